// Package waste holds the controlled waste vocabulary and the category taxonomy built on it.
// Both are fixed at startup and safe for concurrent reads.
package waste

import (
	"strings"

	"golang.org/x/text/cases"
)

// Tag is a member of the controlled waste vocabulary.
type Tag string

func (t Tag) String() string { return string(t) }

// The order matches the list given to the classifier.
var vocabulary = []Tag{
	"Obsolete computers",
	"Old monitors",
	"Broken printers",
	"Circuit boards",
	"Cables and wires",
	"Batteries (rechargeable/disposable)",
	"Smartphones",
	"Tablets",
	"Network equipment",
	"Server hardware",
	"Electronic components",
	"Power supplies",
	"UPS units",
	"Keyboards and mice",
	"External hard drives",
	"Scrap metal",
	"Defective parts",
	"Excess raw materials",
	"Outdated inventory",
	"Rejected product batches",
	"Used solvents",
	"Machine lubricants",
	"Leftover adhesives",
	"Packaging scraps",
	"Spare mechanical parts",
	"Worn conveyor belts",
	"Sawdust and wood scraps",
	"Paint or coating residue",
	"Surplus paper",
	"Ink and toner cartridges",
	"Expired promotional materials",
	"Broken furniture",
	"Cardboard packaging",
	"Plastic wrap",
	"Cleaning chemicals",
	"Lighting equipment",
	"Used filters",
	"Damaged safety gear",
	"Aluminum cans",
	"Plastic bottles",
	"Glass containers",
	"Corrugated cardboard",
	"Soft plastics",
	"Hard plastics",
	"Paper waste",
	"Wooden pallets",
	"Shredded documents",
	"Leftover drywall",
	"Insulation scraps",
	"Metal pipes",
	"PVC piping",
	"Wiring bundles",
	"Flooring tile remnants",
	"Paint cans",
}

var folded = func() map[string]Tag {
	index := make(map[string]Tag, len(vocabulary))
	for _, tag := range vocabulary {
		index[Fold(string(tag))] = tag
	}
	return index
}()

// Vocabulary returns a copy of the controlled vocabulary in its canonical order.
func Vocabulary() []Tag {
	out := make([]Tag, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// VocabularyList renders the vocabulary as a comma-separated list, verbatim.
func VocabularyList() string {
	parts := make([]string, len(vocabulary))
	for i, tag := range vocabulary {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}

// Lookup resolves s to its canonical vocabulary tag. Matching is exact after
// Unicode case folding; surrounding whitespace is not ignored.
func Lookup(s string) (Tag, bool) {
	tag, ok := folded[Fold(s)]
	return tag, ok
}

// IsKnown reports whether t is spelled exactly as a vocabulary member.
func IsKnown(t Tag) bool {
	canonical, ok := folded[Fold(string(t))]
	return ok && canonical == t
}

// Fold returns the case-folded form of s used for case-insensitive comparisons.
// A new caser is built per call since cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
