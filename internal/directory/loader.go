package directory

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ecolink/ecolink/internal/waste"
)

type directoryFile struct {
	Companies []fileCompany `mapstructure:"companies"`
}

type fileCompany struct {
	ID            string   `mapstructure:"id"`
	Name          string   `mapstructure:"name"`
	Description   string   `mapstructure:"description"`
	AcceptedWaste []string `mapstructure:"accepted-waste"`
}

// Load reads a directory from a YAML or JSON file:
//
//	companies:
//	  - name: EcoMetal Solutions
//	    description: We handle scrap metal and defective parts.
//	    accepted-waste: [Scrap metal, Defective parts]
//
// Accepted waste is matched against the vocabulary ignoring case and stored in
// its canonical spelling; unknown items are an error. The id is optional and
// defaults to one derived from the name, so companies sharing a name must each
// set an id.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory file %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes directory data in YAML or JSON form.
func Parse(data []byte) (*Directory, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}

	var parsed directoryFile
	cfg := &mapstructure.DecoderConfig{
		Result:           &parsed,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}

	companies := make([]Company, 0, len(parsed.Companies))
	for idx, fc := range parsed.Companies {
		company, err := fc.toCompany()
		if err != nil {
			return nil, fmt.Errorf("company #%d: %w", idx+1, err)
		}
		companies = append(companies, company)
	}

	return New(companies)
}

func (fc fileCompany) toCompany() (Company, error) {
	c := Company{
		Name:        strings.TrimSpace(fc.Name),
		Description: strings.TrimSpace(fc.Description),
	}

	if id := strings.TrimSpace(fc.ID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return Company{}, fmt.Errorf("%w: id %q: %v", ErrInvalidCompany, id, err)
		}
		c.ID = parsed
	}

	for _, item := range fc.AcceptedWaste {
		tag, ok := waste.Lookup(strings.TrimSpace(item))
		if !ok {
			return Company{}, fmt.Errorf("%w: %s: accepted waste %q is not in the vocabulary", ErrInvalidCompany, c.Name, item)
		}
		c.AcceptedWaste = append(c.AcceptedWaste, tag)
	}

	return c, nil
}
