package suitability

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	a, ok := ParseLine("Menswear | Casual shirts | 92%")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if a.Segment != "Menswear" || a.Use != "Casual shirts" {
		t.Fatalf("got %+v", a)
	}
	if a.Confidence == nil || *a.Confidence != 92 {
		t.Fatalf("confidence = %v, want 92", a.Confidence)
	}
}

func TestParseLineNoConfidence(t *testing.T) {
	a, ok := ParseLine("Womenswear | Dresses")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if a.Segment != "Womenswear" || a.Use != "Dresses" || a.Confidence != nil {
		t.Fatalf("got %+v", a)
	}
}

func TestParseLineMiddlePartsJoined(t *testing.T) {
	a, ok := ParseLine("Menswear | Shirts | Jackets | 75%")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if a.Use != "Shirts - Jackets" {
		t.Fatalf("use = %q", a.Use)
	}
}

func TestParseLineRejects(t *testing.T) {
	bad := []string{"", "   ", "Menswear", "| 92%", "Menswear | 92% |"}
	for _, line := range bad {
		if a, ok := ParseLine(line); ok {
			t.Fatalf("expected %q to be dropped, got %+v", line, a)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Casual  shirts 92%": "Casual shirts",
		"Shirts/Tops":        "Shirts / Tops",
		"Semi- formal":       "Semi - formal",
		"  Denim ()  ":       "Denim",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAggregateScenario(t *testing.T) {
	lines := []string{
		"Menswear | Casual shirts | 92%",
		"Menswear | Formal shirts | 81%",
	}
	groups := Aggregate(ParseLines(lines), 0)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Segment != "Menswear" {
		t.Fatalf("segment = %q", g.Segment)
	}
	if !reflect.DeepEqual(g.Uses, []string{"Casual shirts", "Formal shirts"}) {
		t.Fatalf("uses = %v", g.Uses)
	}
	if g.Sentence != "Casual shirts and Formal shirts." {
		t.Fatalf("sentence = %q", g.Sentence)
	}
}

func TestAggregateDeduplicatesKeepingHighestConfidence(t *testing.T) {
	lines := []string{
		"Menswear | Casual Shirts | 60%",
		"menswear | casual shirts | 90%",
		"Menswear | Trousers | 70%",
	}
	groups := Aggregate(ParseLines(lines), 0)
	if len(groups) != 1 {
		t.Fatalf("case-insensitive segments should merge, got %d groups", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Uses, []string{"casual shirts", "Trousers"}) {
		t.Fatalf("uses = %v", groups[0].Uses)
	}
}

func TestAggregateDuplicationInvariant(t *testing.T) {
	lines := []string{
		"Menswear | Casual shirts | 92%",
		"Home Textiles | Curtains | 70%",
		"Womenswear | Dresses",
	}
	a := ParseLines(lines)

	once := Aggregate(a, 3)
	twice := Aggregate(append(append([]Assertion{}, a...), a...), 3)
	again := Aggregate(a, 3)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("A++A != A: %v vs %v", twice, once)
	}
	if !reflect.DeepEqual(once, again) {
		t.Fatal("aggregation accumulated state across calls")
	}
}

func TestAggregateOrderingAndTruncation(t *testing.T) {
	lines := []string{
		"Womenswear | Dresses | 60%",
		"Menswear | Casual shirts | 92%",
		"Menswear | Formal shirts | 81%",
		"Menswear | Trousers | 40%",
	}
	groups := Aggregate(ParseLines(lines), 2)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Menswear's top use (92) outranks Womenswear's (60).
	if groups[0].Segment != "Menswear" || groups[1].Segment != "Womenswear" {
		t.Fatalf("group order = %q, %q", groups[0].Segment, groups[1].Segment)
	}
	if len(groups[0].Uses) != 2 {
		t.Fatalf("expected truncation to 2 uses, got %v", groups[0].Uses)
	}
}

func TestAggregateTiesKeepDiscoveryOrder(t *testing.T) {
	lines := []string{
		"Womenswear | Dresses | 80%",
		"Menswear | Shirts | 80%",
	}
	groups := Aggregate(ParseLines(lines), 0)
	if groups[0].Segment != "Womenswear" || groups[1].Segment != "Menswear" {
		t.Fatalf("tie order broken: %q, %q", groups[0].Segment, groups[1].Segment)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Bucket{
		"Menswear":        BucketApparel,
		"Womenswear":      BucketApparel,
		"Kidswear":        BucketApparel,
		"Home Textiles":   BucketHome,
		"Accessories":     BucketHome,
		"Uniforms":        BucketHome,
		"Workwear":        BucketHome,
		"Corporate Work":  BucketHome,
		"Formal Shirting": BucketApparel,
	}
	for seg, want := range cases {
		if got := Classify(seg); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", seg, got, want)
		}
	}
}

func TestJoinList(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
	}
	for _, c := range cases {
		if got := JoinList(c.in); got != c.want {
			t.Fatalf("JoinList(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
