package catalog

import "strings"

// Company is the seller profile printed in the header and footer bands.
// Absent fields render as absent; no placeholder values are synthesized.
type Company struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
	Version int    `json:"version,omitempty"`

	Phone    string `json:"phoneNumber,omitempty"`
	WhatsApp string `json:"whatsappNumber,omitempty"`
	Email    string `json:"emailAddress,omitempty"`

	Street     string `json:"addressStreet,omitempty"`
	City       string `json:"addressCity,omitempty"`
	State      string `json:"addressState,omitempty"`
	PostalCode string `json:"addressPostalCode,omitempty"`
	Country    string `json:"addressCountry,omitempty"`

	Deleted bool `json:"deleted,omitempty"`
}

// AddressLine joins the populated address parts into one printable line.
func (c *Company) AddressLine() string {
	parts := []string{c.Street, c.City, c.State, c.PostalCode, c.Country}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
