package directory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/ecolink/ecolink/internal/waste"
)

func TestSampleDirectory(t *testing.T) {
	d := Sample()

	want := []string{"GreenCycle Inc", "EcoMetal Solutions", "PaperPlus Recyclers", "BuildRecycle", "BottleBank"}
	if diff := cmp.Diff(want, d.Names()); diff != "" {
		t.Fatalf("unexpected sample names (-want +got):\n%s", diff)
	}

	for _, c := range d.Companies() {
		if c.ID == uuid.Nil {
			t.Fatalf("company %s has no id", c.Name)
		}
		if c.ID != IDFor(c.Name) {
			t.Fatalf("company %s id is not name-derived", c.Name)
		}
		if d.FindByID(c.ID) != c {
			t.Fatalf("FindByID did not return %s", c.Name)
		}
	}
}

func TestSampleIDsAreStable(t *testing.T) {
	first := Sample().FindByName("BottleBank")
	second := Sample().FindByName("bottlebank")
	if first == nil || second == nil {
		t.Fatal("expected BottleBank in sample directory")
	}
	if first.ID != second.ID {
		t.Fatalf("expected stable ids, got %s and %s", first.ID, second.ID)
	}
}

func TestNewValidates(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name      string
		companies []Company
	}{
		{
			name:      "empty name",
			companies: []Company{{Name: "  ", AcceptedWaste: []waste.Tag{"Scrap metal"}}},
		},
		{
			name:      "unknown tag",
			companies: []Company{{Name: "Acme", AcceptedWaste: []waste.Tag{"Moon rocks"}}},
		},
		{
			name:      "non canonical tag",
			companies: []Company{{Name: "Acme", AcceptedWaste: []waste.Tag{"scrap metal"}}},
		},
		{
			name: "duplicate id",
			companies: []Company{
				{ID: id, Name: "Acme"},
				{ID: id, Name: "Other"},
			},
		},
		{
			name: "duplicate derived id",
			companies: []Company{
				{Name: "Acme"},
				{Name: " Acme "},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.companies)
			if !errors.Is(err, ErrInvalidCompany) {
				t.Fatalf("expected ErrInvalidCompany, got %v", err)
			}
		})
	}
}

func TestNewAllowsEmptyDirectory(t *testing.T) {
	d, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("expected empty directory, got %d", d.Len())
	}
}

func TestNewCopiesInput(t *testing.T) {
	input := []Company{{Name: "Acme", AcceptedWaste: []waste.Tag{"Scrap metal"}}}
	d, err := New(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input[0].Name = "Changed"
	input[0].AcceptedWaste[0] = "Paint cans"

	c := d.Companies()[0]
	if c.Name != "Acme" || c.AcceptedWaste[0] != "Scrap metal" {
		t.Fatalf("directory was mutated through input: %+v", c)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
companies:
  - name: Metal Works
    description: Smelter.
    accepted-waste: [scrap metal, Metal pipes]
  - id: 0b5b4c4e-8a8e-4b43-9a53-0c3f1c6d2e11
    name: Glassy
    accepted-waste:
      - Glass containers
`)

	d, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Len() != 2 {
		t.Fatalf("expected 2 companies, got %d", d.Len())
	}

	metal := d.FindByName("Metal Works")
	if diff := cmp.Diff([]waste.Tag{"Scrap metal", "Metal pipes"}, metal.AcceptedWaste); diff != "" {
		t.Fatalf("unexpected tags (-want +got):\n%s", diff)
	}

	glassy := d.FindByName("Glassy")
	if glassy.ID.String() != "0b5b4c4e-8a8e-4b43-9a53-0c3f1c6d2e11" {
		t.Fatalf("expected explicit id, got %s", glassy.ID)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"companies":[{"name":"BottleBank","accepted-waste":["Plastic bottles"]}]}`)

	d, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.FindByName("BottleBank") == nil {
		t.Fatal("expected BottleBank")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "unknown waste", data: "companies:\n  - name: A\n    accepted-waste: [Moon rocks]\n"},
		{name: "unknown field", data: "companies:\n  - name: A\n    website: a.example\n"},
		{name: "bad id", data: "companies:\n  - id: nope\n    name: A\n"},
		{name: "broken yaml", data: "companies: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	if err := os.WriteFile(path, []byte("companies:\n  - name: A\n    accepted-waste: [Paint cans]\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 company, got %d", d.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPreview(t *testing.T) {
	c := Sample().FindByName("GreenCycle Inc")
	if got := len(c.Preview(2)); got != 2 {
		t.Fatalf("expected 2 preview tags, got %d", got)
	}
	if got := len(c.Preview(10)); got != 3 {
		t.Fatalf("expected all 3 tags, got %d", got)
	}
	if got := c.Preview(0); got != nil {
		t.Fatalf("expected nil preview, got %v", got)
	}

	preview := c.Preview(2)
	preview[0] = "Paint cans"
	if c.AcceptedWaste[0] == "Paint cans" {
		t.Fatal("preview shares the company's accepted waste")
	}
	full := c.Preview(10)
	full[0] = "Paint cans"
	if c.AcceptedWaste[0] == "Paint cans" {
		t.Fatal("full preview shares the company's accepted waste")
	}
}

func TestSharedNamesNeedExplicitIDs(t *testing.T) {
	_, err := Parse([]byte("companies:\n  - name: Depot\n  - name: Depot\n"))
	if !errors.Is(err, ErrInvalidCompany) || !strings.Contains(err.Error(), "needs an explicit id") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	d, err := Parse([]byte(`
companies:
  - id: 0b5b4c4e-8a8e-4b43-9a53-0c3f1c6d2e11
    name: Depot
  - id: 0b5b4c4e-8a8e-4b43-9a53-0c3f1c6d2e12
    name: Depot
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected both depots, got %d", d.Len())
	}
}
