package waste

import "strings"

// Category is a named facet over the vocabulary used to narrow the directory.
type Category struct {
	Key  string
	Name string
	tags Set
}

// Tags returns the category members in their declared order.
func (c *Category) Tags() []Tag { return c.tags.Tags() }

// Has reports whether tag belongs to the category.
func (c *Category) Has(tag Tag) bool { return c.tags.Has(tag) }

// Overlaps reports whether any of tags belongs to the category.
func (c *Category) Overlaps(tags []Tag) bool { return c.tags.Overlaps(tags) }

var categories = []*Category{
	{
		Key:  "ewaste",
		Name: "🖥️ E-Waste",
		tags: NewSet(
			"Obsolete computers", "Old monitors", "Broken printers", "Circuit boards",
			"Cables and wires", "Batteries (rechargeable/disposable)", "Smartphones", "Tablets",
			"Network equipment", "Server hardware", "Electronic components", "Power supplies",
			"UPS units", "Keyboards and mice", "External hard drives",
		),
	},
	{
		Key:  "manufacturing",
		Name: "🧱 Manufacturing Surplus",
		tags: NewSet(
			"Scrap metal", "Defective parts", "Excess raw materials", "Outdated inventory",
			"Rejected product batches", "Used solvents", "Machine lubricants", "Leftover adhesives",
			"Packaging scraps", "Spare mechanical parts", "Worn conveyor belts",
			"Sawdust and wood scraps", "Paint or coating residue",
		),
	},
	{
		Key:  "office",
		Name: "📦 Office Supplies",
		tags: NewSet(
			"Surplus paper", "Ink and toner cartridges", "Expired promotional materials",
			"Broken furniture", "Cardboard packaging", "Plastic wrap", "Cleaning chemicals",
			"Lighting equipment", "Used filters", "Damaged safety gear",
		),
	},
	{
		Key:  "recyclables",
		Name: "♻️ Recyclables",
		tags: NewSet(
			"Aluminum cans", "Plastic bottles", "Glass containers", "Corrugated cardboard",
			"Soft plastics", "Hard plastics", "Paper waste", "Wooden pallets", "Shredded documents",
		),
	},
	{
		Key:  "construction",
		Name: "🛠️ Construction Waste",
		tags: NewSet(
			"Leftover drywall", "Insulation scraps", "Metal pipes", "PVC piping",
			"Wiring bundles", "Flooring tile remnants", "Paint cans",
		),
	},
}

// Categories returns the built-in categories in display order.
func Categories() []*Category {
	out := make([]*Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey finds a category by key or display name, ignoring case.
func CategoryByKey(s string) (*Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, c := range categories {
		if strings.EqualFold(c.Key, s) || Fold(c.Name) == Fold(s) {
			return c, true
		}
	}
	return nil, false
}

// CategoryKeys lists the keys of all categories in display order.
func CategoryKeys() []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key
	}
	return keys
}
