// Package suitability parses the delimited suitability lines attached to a
// product record and aggregates them into grammatical, deduplicated
// summaries grouped by market segment.
//
// A raw line has the form
//
//	segment | use [| use...] | confidence%
//
// where the trailing confidence is optional. Lines that do not yield both
// a segment and a use are dropped rather than coerced to placeholders.
package suitability

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Assertion is one parsed suitability statement.
type Assertion struct {
	Segment    string
	Use        string
	Confidence *int // 0-100; nil when the line carried no percentage
}

// Group is the aggregated view of all assertions sharing one segment.
type Group struct {
	Segment  string
	Uses     []string // deduplicated, ordered by confidence descending
	Sentence string   // English list join of Uses, period-terminated
}

var (
	percentRE    = regexp.MustCompile(`\b\d{1,3}\s*%`)
	emptyParenRE = regexp.MustCompile(`\(\s*\)`)
	multiSpaceRE = regexp.MustCompile(`\s{2,}`)
	slashRE      = regexp.MustCompile(`\s*/\s*`)
	hyphenRE     = regexp.MustCompile(`\s*-\s*`)
	confidenceRE = regexp.MustCompile(`(\d{1,3})\s*%\s*$`)
	useSplitRE   = regexp.MustCompile(`[,\x{2022}]+`)
)

func stripPercent(s string) string {
	s = percentRE.ReplaceAllString(s, "")
	s = emptyParenRE.ReplaceAllString(s, "")
	s = multiSpaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize strips embedded percentage tokens, collapses duplicate
// whitespace, and standardizes slash and hyphen spacing, so that visually
// equivalent strings compare equal case-insensitively.
func Normalize(s string) string {
	s = stripPercent(s)
	s = slashRE.ReplaceAllString(s, " / ")
	s = hyphenRE.ReplaceAllString(s, " - ")
	s = multiSpaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseLine parses one raw suitability line. ok is false for lines that do
// not produce both a non-empty segment and a non-empty use.
func ParseLine(line string) (a Assertion, ok bool) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Assertion{}, false
	}

	var parts []string
	for _, p := range strings.Split(raw, "|") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return Assertion{}, false
	}

	seg := Normalize(parts[0])

	last := parts[len(parts)-1]
	var conf *int
	if m := confidenceRE.FindStringSubmatch(last); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			conf = &v
		}
	}

	useParts := parts[1:]
	if conf != nil && len(parts) > 2 {
		useParts = parts[1 : len(parts)-1]
	}
	use := Normalize(strings.Join(useParts, " - "))

	if seg == "" || use == "" {
		return Assertion{}, false
	}
	return Assertion{Segment: seg, Use: use, Confidence: conf}, true
}

// ParseLines parses every line, dropping the unusable ones.
func ParseLines(lines []string) []Assertion {
	var out []Assertion
	for _, l := range lines {
		if a, ok := ParseLine(l); ok {
			out = append(out, a)
		}
	}
	return out
}

type scoredUse struct {
	label string
	conf  int // -1 when no confidence was supplied
	order int
}

// Aggregate groups assertions by segment (case-insensitively, preserving
// discovery order), deduplicates uses within each segment by normalized
// lowercase key keeping the highest-confidence instance, sorts uses by
// confidence descending, truncates to maxUsesPerSegment (no limit when
// <= 0), and builds the English sentence for each group.
//
// Groups are ordered by their top use's confidence, descending; ties keep
// discovery order. Aggregation holds no state between calls, so repeated
// or duplicated input yields identical output.
func Aggregate(assertions []Assertion, maxUsesPerSegment int) []Group {
	type segBucket struct {
		label string
		uses  []scoredUse
		index map[string]int
	}

	var order []string
	buckets := map[string]*segBucket{}
	seq := 0

	for _, a := range assertions {
		segLabel := Normalize(a.Segment)
		segKey := strings.ToLower(segLabel)
		if segKey == "" {
			continue
		}
		b, found := buckets[segKey]
		if !found {
			b = &segBucket{label: segLabel, index: map[string]int{}}
			buckets[segKey] = b
			order = append(order, segKey)
		}

		conf := -1
		if a.Confidence != nil {
			conf = *a.Confidence
		}

		// A single use field may itself carry a comma- or
		// bullet-separated list.
		for _, part := range useSplitRE.Split(a.Use, -1) {
			label := Normalize(part)
			if label == "" || label == "-" {
				continue
			}
			key := strings.ToLower(label)
			if i, dup := b.index[key]; dup {
				if conf > b.uses[i].conf {
					b.uses[i].conf = conf
					b.uses[i].label = label
				}
				continue
			}
			b.index[key] = len(b.uses)
			b.uses = append(b.uses, scoredUse{label: label, conf: conf, order: seq})
			seq++
		}
	}

	type ranked struct {
		group Group
		top   int
	}
	entries := make([]ranked, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if len(b.uses) == 0 {
			continue
		}

		sort.SliceStable(b.uses, func(i, j int) bool {
			return b.uses[i].conf > b.uses[j].conf
		})
		uses := b.uses
		if maxUsesPerSegment > 0 && len(uses) > maxUsesPerSegment {
			uses = uses[:maxUsesPerSegment]
		}

		labels := make([]string, len(uses))
		for i, u := range uses {
			labels[i] = u.label
		}
		entries = append(entries, ranked{
			group: Group{
				Segment:  b.label,
				Uses:     labels,
				Sentence: JoinList(labels) + ".",
			},
			top: uses[0].conf,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].top > entries[j].top
	})

	groups := make([]Group, len(entries))
	for i, e := range entries {
		groups[i] = e.group
	}
	return groups
}

// JoinList joins items into a grammatical English list: "A", "A and B",
// "A, B, and C".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
