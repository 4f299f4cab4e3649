// Package matching ranks and filters the company directory against a user's
// classified waste and the current query. Everything here is pure and safe for
// concurrent use.
package matching

import (
	"strings"

	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/waste"
)

// Query is the user-driven part of a match: an optional category facet and
// free search text. The zero value matches everything.
type Query struct {
	Category *waste.Category
	Search   string
}

// IsZero reports whether the query narrows nothing.
func (q Query) IsZero() bool {
	return q.Category == nil && q.Search == ""
}

// Entry is one company in a match result.
type Entry struct {
	Company   *directory.Company
	BestMatch bool
}

// Result is the ordered output of Match.
type Result struct {
	Entries     []Entry
	BestMatches []*directory.Company
	// ShowBestMatches is set only when there are best matches and the query is
	// empty; any filtering hides the banner.
	ShowBestMatches bool
	Steps           []Step
}

// Companies returns the ordered companies of the result.
func (r Result) Companies() []*directory.Company {
	out := make([]*directory.Company, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Company
	}
	return out
}

type Matcher struct {
	dir *directory.Directory
}

func New(dir *directory.Directory) *Matcher {
	return &Matcher{dir: dir}
}

func (m *Matcher) Directory() *directory.Directory {
	return m.dir
}

// BestMatches returns companies accepting any of userWaste, in directory order.
func (m *Matcher) BestMatches(userWaste waste.Set) []*directory.Company {
	best, _ := m.partition(userWaste)
	return best
}

// Match orders best matches first and the rest after, both in directory order,
// then applies the category and search filters conjunctively.
func (m *Matcher) Match(userWaste waste.Set, q Query) Result {
	best, rest := m.partition(userWaste)

	isBest := make(map[*directory.Company]bool, len(best))
	for _, c := range best {
		isBest[c] = true
	}

	base := make([]*directory.Company, 0, len(best)+len(rest))
	base = append(base, best...)
	base = append(base, rest...)

	filtered, steps := Run(Steps(q), base)

	entries := make([]Entry, len(filtered))
	for i, c := range filtered {
		entries[i] = Entry{Company: c, BestMatch: isBest[c]}
	}

	return Result{
		Entries:         entries,
		BestMatches:     best,
		ShowBestMatches: len(best) > 0 && q.IsZero(),
		Steps:           steps,
	}
}

// Steps builds the filter pipeline for q. Disabled steps are included so they
// can be described.
func Steps(q Query) []Filter {
	return []Filter{
		NewCategory(q.Category),
		NewSearch(q.Search),
	}
}

// Explain returns the tags shared by the company and the user, in the
// company's order. An empty result is valid.
func Explain(c *directory.Company, userWaste waste.Set) []waste.Tag {
	if c == nil {
		return []waste.Tag{}
	}
	return userWaste.Intersect(c.AcceptedWaste)
}

func (m *Matcher) partition(userWaste waste.Set) (best, rest []*directory.Company) {
	best = make([]*directory.Company, 0)
	rest = make([]*directory.Company, 0)
	if m == nil || m.dir == nil {
		return best, rest
	}

	for _, c := range m.dir.Companies() {
		if c.Accepts(userWaste) {
			best = append(best, c)
		} else {
			rest = append(rest, c)
		}
	}
	return best, rest
}

func containsFolded(s, foldedNeedle string) bool {
	return strings.Contains(waste.Fold(s), foldedNeedle)
}
