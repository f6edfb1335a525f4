package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lvillar/fabsheet"
	"github.com/lvillar/fabsheet/catalog"
	"github.com/lvillar/fabsheet/mcp"
	"github.com/lvillar/fabsheet/refdata"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileConfig mirrors the optional YAML configuration file. Flags override
// anything set here.
type fileConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	OutputDir  string `yaml:"output_dir"`
	ProductURL string `yaml:"product_url_base"`
	Logo       string `yaml:"logo"`

	Company struct {
		Name     string `yaml:"name"`
		Phone    string `yaml:"phone"`
		WhatsApp string `yaml:"whatsapp"`
		Email    string `yaml:"email"`
		Address  string `yaml:"address"`
	} `yaml:"company"`

	Grid struct {
		Cols int `yaml:"cols"`
		Rows int `yaml:"rows"`
	} `yaml:"grid"`
}

type renderFlags struct {
	configFile string
	baseURL    string
	apiKey     string
	outputDir  string
	productURL string
	collection string
	gridCols   int
	gridRows   int
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var flags renderFlags

	rootCmd := &cobra.Command{
		Use:   "fabsheet <product.json | fabric-code>",
		Short: "Render a textile product record into a print-ready PDF sheet",
		Long: `Fabsheet composes an A4 product sheet from a textile catalog record: a
detail page with hero image, specification table, suitability summaries and
QR artwork, plus card-grid pages for the product's collection.

The argument is either a path to a product JSON file or a fabric code to
fetch from the reference-data service (requires --base-url).`,
		Example: `  fabsheet product.json --url https://shop.example/p/ab-102
  fabsheet AB-102 --base-url https://crm.example/api/v1 --api-key $FABSHEET_API_KEY
  fabsheet version`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	bindRenderFlags(rootCmd, &flags)
	rootCmd.AddCommand(newMCPCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newMCPCommand() *cobra.Command {
	var baseURL, apiKey string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol server over stdio",
		Long: `Serve the sheet renderer and catalog lookups as MCP tools over stdio,
for use from AI assistants. Catalog tools need --base-url; without it only
rendering from inline records works.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolver *refdata.Resolver
			if baseURL != "" {
				client, err := refdata.NewClient(baseURL, apiKey)
				if err != nil {
					return err
				}
				resolver = refdata.NewResolver(client)
			}

			server := mcp.NewServer()
			mcp.RegisterTools(server, resolver)
			mcp.RegisterResources(server)
			return server.Run()
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", os.Getenv("FABSHEET_BASE_URL"), "Reference-data service base URL")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("FABSHEET_API_KEY"), "Reference-data service API key")

	return cmd
}

func bindRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", os.Getenv("FABSHEET_BASE_URL"), "Reference-data service base URL")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", os.Getenv("FABSHEET_API_KEY"), "Reference-data service API key")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "Output directory for the generated PDF")
	cmd.Flags().StringVar(&flags.productURL, "url", "", "Product page URL encoded into the QR code")
	cmd.Flags().StringVar(&flags.collection, "collection", "", "Collection id override for the grid pages")
	cmd.Flags().IntVar(&flags.gridCols, "grid-cols", 0, "Grid columns per collection page")
	cmd.Flags().IntVar(&flags.gridRows, "grid-rows", 0, "Grid rows per collection page")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
}

func runRender(cmd *cobra.Command, arg string, flags renderFlags) error {
	if flags.verbose {
		logger.StandardLogger().SetLogLevel(1)
	}

	var cfg fileConfig
	if flags.configFile != "" {
		data, err := os.ReadFile(flags.configFile)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	baseURL := firstNonEmpty(flags.baseURL, cfg.BaseURL)
	apiKey := firstNonEmpty(flags.apiKey, cfg.APIKey)

	var resolver *refdata.Resolver
	if baseURL != "" {
		client, err := refdata.NewClient(baseURL, apiKey)
		if err != nil {
			return err
		}
		resolver = refdata.NewResolver(client)
	}

	product, err := loadProduct(cmd, arg, resolver)
	if err != nil {
		return err
	}

	opts := []fabsheet.Option{
		fabsheet.WithCompanyName(cfg.Company.Name),
		fabsheet.WithPhone(cfg.Company.Phone),
		fabsheet.WithWhatsApp(cfg.Company.WhatsApp),
		fabsheet.WithEmail(cfg.Company.Email),
		fabsheet.WithAddressLine(cfg.Company.Address),
	}
	if resolver != nil {
		opts = append(opts, fabsheet.WithResolver(resolver))
	}
	if dir := firstNonEmpty(flags.outputDir, cfg.OutputDir); dir != "" {
		opts = append(opts, fabsheet.WithOutputDir(dir))
	}
	if u := productPageURL(flags.productURL, cfg.ProductURL, product); u != "" {
		opts = append(opts, fabsheet.WithProductURL(u))
	}
	if flags.collection != "" {
		opts = append(opts, fabsheet.WithCollectionID(flags.collection))
	}
	if cols, rows := gridDims(flags, cfg); cols > 0 && rows > 0 {
		opts = append(opts, fabsheet.WithGrid(cols, rows))
	}
	if cfg.Logo != "" {
		data, err := os.ReadFile(cfg.Logo)
		if err != nil {
			return fmt.Errorf("reading logo: %w", err)
		}
		opts = append(opts, fabsheet.WithLogo(data, logoFormat(cfg.Logo)))
	}

	res, err := fabsheet.Generate(cmd.Context(), product, opts...)
	if err != nil {
		return err
	}

	logger.Infof("wrote %s (%d pages, %d grid)", res.Filename, res.Pages, res.GridPages)
	return nil
}

// loadProduct reads the record from a JSON file when the argument names
// one, and otherwise fetches it by fabric code.
func loadProduct(cmd *cobra.Command, arg string, resolver *refdata.Resolver) (*catalog.Product, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading product file: %w", err)
		}
		var product catalog.Product
		if err := json.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("parsing product file: %w", err)
		}
		return &product, nil
	}

	if resolver == nil {
		return nil, fmt.Errorf("%q is not a file; fetching by fabric code requires --base-url", arg)
	}
	return resolver.ProductByCode(cmd.Context(), arg)
}

// productPageURL resolves the QR target: an explicit --url wins, otherwise
// the configured base has the product slug or code appended.
func productPageURL(explicit, base string, product *catalog.Product) string {
	if explicit != "" {
		return explicit
	}
	if base == "" {
		return ""
	}
	slug := firstNonEmpty(product.Slug, product.DisplayCode())
	if slug == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + slug
}

func gridDims(flags renderFlags, cfg fileConfig) (int, int) {
	cols := flags.gridCols
	if cols == 0 {
		cols = cfg.Grid.Cols
	}
	rows := flags.gridRows
	if rows == 0 {
		rows = cfg.Grid.Rows
	}
	return cols, rows
}

func logoFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".gif":
		return "GIF"
	default:
		return "PNG"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fabsheet %s (commit: %s, built: %s, go: %s)\n",
				version, commit, date, runtime.Version())
		},
	}
}
