// Package directory holds the read-only company directory that users are matched against.
package directory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecolink/ecolink/internal/waste"
)

// namespace seeds the name-derived company IDs so they stay stable between runs.
var namespace = uuid.MustParse("6f1c3a52-9d1e-4c8b-a7f4-2b0e5d9c7a31")

var ErrInvalidCompany = errors.New("invalid company")

type Company struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	AcceptedWaste []waste.Tag `json:"accepted_waste"`
}

// IDFor returns the stable identity derived from a company name.
func IDFor(name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(strings.TrimSpace(name)))
}

// Accepts reports whether the company takes any of the given tags.
func (c *Company) Accepts(tags waste.Set) bool {
	return tags.Overlaps(c.AcceptedWaste)
}

// Preview returns a copy of up to n accepted tags for compact listings.
func (c *Company) Preview(n int) []waste.Tag {
	if n <= 0 {
		return nil
	}
	n = min(n, len(c.AcceptedWaste))
	out := make([]waste.Tag, n)
	copy(out, c.AcceptedWaste[:n])
	return out
}

func (c *Company) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCompany)
	}
	for _, tag := range c.AcceptedWaste {
		if !waste.IsKnown(tag) {
			return fmt.Errorf("%w: %s: accepted waste %q is not in the vocabulary", ErrInvalidCompany, c.Name, tag)
		}
	}
	return nil
}

// Directory is an immutable, ordered list of companies.
type Directory struct {
	items []*Company
	byID  map[uuid.UUID]*Company
}

// New validates the companies and freezes them into a Directory. Companies
// without an ID get one derived from their name, so two companies sharing a
// name need explicit IDs. The returned companies must be treated as read-only.
func New(companies []Company) (*Directory, error) {
	d := &Directory{
		items: make([]*Company, 0, len(companies)),
		byID:  make(map[uuid.UUID]*Company, len(companies)),
	}

	for i := range companies {
		c := companies[i]
		c.Name = strings.TrimSpace(c.Name)
		if err := c.validate(); err != nil {
			return nil, err
		}
		derived := c.ID == uuid.Nil
		if derived {
			c.ID = IDFor(c.Name)
		}
		if _, dup := d.byID[c.ID]; dup {
			if derived {
				return nil, fmt.Errorf("%w: duplicate name %q needs an explicit id", ErrInvalidCompany, c.Name)
			}
			return nil, fmt.Errorf("%w: duplicate id %s (%s)", ErrInvalidCompany, c.ID, c.Name)
		}

		c.AcceptedWaste = append([]waste.Tag(nil), c.AcceptedWaste...)
		d.items = append(d.items, &c)
		d.byID[c.ID] = &c
	}

	return d, nil
}

// Companies returns the directory in its declared order.
func (d *Directory) Companies() []*Company {
	out := make([]*Company, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Directory) Len() int {
	return len(d.items)
}

func (d *Directory) FindByID(id uuid.UUID) *Company {
	return d.byID[id]
}

// FindByName returns the first company with the given name, ignoring case.
func (d *Directory) FindByName(name string) *Company {
	name = strings.TrimSpace(name)
	for _, c := range d.items {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.items))
	for _, c := range d.items {
		names = append(names, c.Name)
	}
	return names
}
