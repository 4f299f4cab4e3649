package matching

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/waste"
)

func names(companies []*directory.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Name
	}
	return out
}

func mustCategory(t *testing.T, key string) *waste.Category {
	t.Helper()
	c, ok := waste.CategoryByKey(key)
	if !ok {
		t.Fatalf("category %q not found", key)
	}
	return c
}

func TestMatchBestMatchFirst(t *testing.T) {
	m := New(directory.Sample())
	userWaste := waste.NewSet("Scrap metal")

	result := m.Match(userWaste, Query{})

	if diff := cmp.Diff([]string{"EcoMetal Solutions"}, names(result.BestMatches)); diff != "" {
		t.Fatalf("unexpected best matches (-want +got):\n%s", diff)
	}

	want := []string{"EcoMetal Solutions", "GreenCycle Inc", "PaperPlus Recyclers", "BuildRecycle", "BottleBank"}
	if diff := cmp.Diff(want, names(result.Companies())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	if !result.Entries[0].BestMatch {
		t.Fatal("expected first entry to be flagged as best match")
	}
	for _, e := range result.Entries[1:] {
		if e.BestMatch {
			t.Fatalf("unexpected best match flag on %s", e.Company.Name)
		}
	}

	if !result.ShowBestMatches {
		t.Fatal("expected best match banner without a query")
	}
	if len(result.Steps) != 0 {
		t.Fatalf("expected no filter steps for empty query, got %+v", result.Steps)
	}
}

func TestMatchCategoryRecyclables(t *testing.T) {
	m := New(directory.Sample())

	result := m.Match(waste.NewSet("Scrap metal"), Query{Category: mustCategory(t, "recyclables")})

	if diff := cmp.Diff([]string{"BottleBank"}, names(result.Companies())); diff != "" {
		t.Fatalf("unexpected companies (-want +got):\n%s", diff)
	}
	if result.ShowBestMatches {
		t.Fatal("best match banner must be hidden while a category is selected")
	}

	want := []Step{{Name: "category", Initial: 5, Dropped: 4, Left: 1}}
	if diff := cmp.Diff(want, result.Steps); diff != "" {
		t.Fatalf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestMatchSearchPaper(t *testing.T) {
	m := New(directory.Sample())

	result := m.Match(waste.Set{}, Query{Search: "paper"})

	if diff := cmp.Diff([]string{"PaperPlus Recyclers"}, names(result.Companies())); diff != "" {
		t.Fatalf("unexpected companies (-want +got):\n%s", diff)
	}
	for _, c := range result.Companies() {
		if c.Name == "GreenCycle Inc" {
			t.Fatal("GreenCycle Inc must not match paper")
		}
	}
	if result.ShowBestMatches {
		t.Fatal("best match banner must be hidden while searching")
	}
}

func TestMatchSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "name match ignores case", search: "BOTTLE", want: []string{"BottleBank"}},
		{name: "tag match", search: "drywall", want: []string{"BuildRecycle"}},
		{name: "shared substring", search: "p", want: []string{"GreenCycle Inc", "EcoMetal Solutions", "PaperPlus Recyclers", "BuildRecycle", "BottleBank"}},
		{name: "no match", search: "uranium", want: []string{}},
		{name: "whitespace is literal", search: "  ", want: []string{}},
	}

	m := New(directory.Sample())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := names(m.Match(waste.Set{}, Query{Search: tt.search}).Companies())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected companies (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchFiltersAreConjunctive(t *testing.T) {
	m := New(directory.Sample())
	userWaste := waste.NewSet("Paint cans", "Obsolete computers")

	result := m.Match(userWaste, Query{Category: mustCategory(t, "ewaste"), Search: "bank"})
	if len(result.Entries) != 0 {
		t.Fatalf("expected no companies, got %v", names(result.Companies()))
	}

	result = m.Match(userWaste, Query{Category: mustCategory(t, "construction"), Search: "paint"})
	if diff := cmp.Diff([]string{"BuildRecycle"}, names(result.Companies())); diff != "" {
		t.Fatalf("unexpected companies (-want +got):\n%s", diff)
	}
	if !result.Entries[0].BestMatch {
		t.Fatal("BuildRecycle should keep its best match flag after filtering")
	}
}

func TestMatchPreservesBaseOrderAfterFiltering(t *testing.T) {
	m := New(directory.Sample())
	userWaste := waste.NewSet("Plastic bottles", "Leftover drywall")

	result := m.Match(userWaste, Query{Search: "e"})
	want := []string{"BuildRecycle", "BottleBank", "GreenCycle Inc", "EcoMetal Solutions", "PaperPlus Recyclers"}
	if diff := cmp.Diff(want, names(result.Companies())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestBestMatchesIndependentOfQuery(t *testing.T) {
	m := New(directory.Sample())
	userWaste := waste.NewSet("Surplus paper", "Aluminum cans")
	expected := names(m.BestMatches(userWaste))

	queries := []Query{
		{},
		{Search: "metal"},
		{Category: mustCategory(t, "construction")},
		{Category: mustCategory(t, "office"), Search: "zzz"},
	}

	for i, q := range queries {
		got := names(m.Match(userWaste, q).BestMatches)
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Fatalf("query %d changed best matches (-want +got):\n%s", i, diff)
		}
	}
}

func TestMatchIsDeterministicAndIdempotent(t *testing.T) {
	m := New(directory.Sample())
	userWaste := waste.NewSet("Scrap metal", "Plastic bottles")
	q := Query{Category: mustCategory(t, "manufacturing")}

	first := m.Match(userWaste, q)
	for i := 0; i < 3; i++ {
		again := m.Match(userWaste, q)
		if diff := cmp.Diff(names(first.Companies()), names(again.Companies())); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
		if again.ShowBestMatches != first.ShowBestMatches {
			t.Fatalf("run %d banner flag differs", i)
		}
	}
}

func TestMatchConcurrentUse(t *testing.T) {
	m := New(directory.Sample())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := names(m.Match(waste.NewSet("Scrap metal"), Query{}).Companies())
			if got[0] != "EcoMetal Solutions" {
				errs <- fmt.Errorf("unexpected first company %q", got[0])
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	empty, err := directory.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := New(empty).Match(waste.NewSet("Scrap metal"), Query{Search: "x"})
	if len(result.Entries) != 0 || len(result.BestMatches) != 0 || result.ShowBestMatches {
		t.Fatalf("expected empty result, got %+v", result)
	}

	result = New(directory.Sample()).Match(waste.Set{}, Query{})
	if len(result.Entries) != 5 {
		t.Fatalf("expected unfiltered directory, got %d entries", len(result.Entries))
	}
	if len(result.BestMatches) != 0 || result.ShowBestMatches {
		t.Fatal("expected no best matches for empty user waste")
	}
}

func TestExplain(t *testing.T) {
	d := directory.Sample()
	metal := d.FindByName("EcoMetal Solutions")

	got := Explain(metal, waste.NewSet("Defective parts", "Paint cans", "Scrap metal"))
	if diff := cmp.Diff([]waste.Tag{"Scrap metal", "Defective parts"}, got); diff != "" {
		t.Fatalf("unexpected shared tags (-want +got):\n%s", diff)
	}

	for _, c := range d.Companies() {
		shared := Explain(c, waste.Set{})
		if shared == nil || len(shared) != 0 {
			t.Fatalf("expected empty non-nil explanation for %s, got %#v", c.Name, shared)
		}
	}

	if got := Explain(nil, waste.NewSet("Scrap metal")); len(got) != 0 {
		t.Fatalf("expected empty explanation for nil company, got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	statuses := Describe(Steps(Query{Category: mustCategory(t, "office")}))

	want := []Status{
		{Name: "category", Enabled: true, Details: map[string]string{"category": "office"}},
		{Name: "search", Enabled: false, Details: map[string]string{}},
	}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("unexpected statuses (-want +got):\n%s", diff)
	}
}
