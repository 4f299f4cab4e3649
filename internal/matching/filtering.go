package matching

import (
	"github.com/ecolink/ecolink/internal/directory"
)

// Filter represents a single filtering step applied to the ordered candidates.
// Apply must keep the relative order of the companies it retains.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(companies []*directory.Company) ([]*directory.Company, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Run applies the enabled filters in order. Disabled filters are skipped and
// leave no step behind.
func Run(steps []Filter, companies []*directory.Company) ([]*directory.Company, []Step) {
	reports := make([]Step, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}

		next, info := step.Apply(companies)
		info.Name = step.Name()
		reports = append(reports, info)
		companies = next
	}

	return companies, reports
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func keep(companies []*directory.Company, pred func(*directory.Company) bool) ([]*directory.Company, Step) {
	initial := len(companies)
	kept := make([]*directory.Company, 0, initial)
	for _, c := range companies {
		if pred(c) {
			kept = append(kept, c)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
