package matching

import (
	"strconv"

	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/waste"
)

type categoryFilter struct {
	category *waste.Category
}

// NewCategory keeps companies accepting at least one tag of the category.
// A nil category disables the step.
func NewCategory(category *waste.Category) Filter {
	return &categoryFilter{category: category}
}

func (f *categoryFilter) Name() string { return "category" }

func (f *categoryFilter) IsEnabled() bool { return f.category != nil }

func (f *categoryFilter) Apply(companies []*directory.Company) ([]*directory.Company, Step) {
	return keep(companies, func(c *directory.Company) bool {
		return f.category.Overlaps(c.AcceptedWaste)
	})
}

func (f *categoryFilter) Status() Status {
	details := map[string]string{}
	if f.category != nil {
		details["category"] = f.category.Key
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Details: details}
}

type searchFilter struct {
	text string
}

// NewSearch keeps companies whose name or any accepted tag contains text,
// ignoring case. Empty text disables the step.
func NewSearch(text string) Filter {
	return &searchFilter{text: text}
}

func (f *searchFilter) Name() string { return "search" }

func (f *searchFilter) IsEnabled() bool { return f.text != "" }

func (f *searchFilter) Apply(companies []*directory.Company) ([]*directory.Company, Step) {
	needle := waste.Fold(f.text)
	return keep(companies, func(c *directory.Company) bool {
		if containsFolded(c.Name, needle) {
			return true
		}
		for _, tag := range c.AcceptedWaste {
			if containsFolded(string(tag), needle) {
				return true
			}
		}
		return false
	})
}

func (f *searchFilter) Status() Status {
	details := map[string]string{}
	if f.text != "" {
		details["text"] = strconv.Quote(f.text)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Details: details}
}
