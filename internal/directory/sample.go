package directory

import "github.com/ecolink/ecolink/internal/waste"

var sampleCompanies = []Company{
	{
		Name:          "GreenCycle Inc",
		Description:   "Specialists in electronics recycling.",
		AcceptedWaste: []waste.Tag{"Obsolete computers", "Broken printers", "Batteries (rechargeable/disposable)"},
	},
	{
		Name:          "EcoMetal Solutions",
		Description:   "We handle scrap metal and defective parts.",
		AcceptedWaste: []waste.Tag{"Scrap metal", "Defective parts"},
	},
	{
		Name:          "PaperPlus Recyclers",
		Description:   "Collecting office paper and surplus materials.",
		AcceptedWaste: []waste.Tag{"Surplus paper", "Ink and toner cartridges"},
	},
	{
		Name:          "BuildRecycle",
		Description:   "Construction site cleanup and material recovery.",
		AcceptedWaste: []waste.Tag{"Leftover drywall", "PVC piping", "Paint cans"},
	},
	{
		Name:          "BottleBank",
		Description:   "Plastic and aluminum bottle redemption service.",
		AcceptedWaste: []waste.Tag{"Plastic bottles", "Aluminum cans"},
	},
}

// Sample returns the built-in five-company directory.
func Sample() *Directory {
	d, err := New(sampleCompanies)
	if err != nil {
		panic("directory: invalid sample data: " + err.Error())
	}
	return d
}
