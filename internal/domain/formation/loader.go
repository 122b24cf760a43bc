package formation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Sizes map[int][]System `yaml:"sizes"`
}

// LoadCatalogFile reads a YAML override on top of the default catalog.
// Sizes present in the file replace the built-in entries for that size.
//
//	sizes:
//	  6:
//	    - name: 2-2-1
//	      slots: [GK, DF1, DF2, MF1, MF2, FW1]
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formation catalog %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}

	entries := defaultEntries()
	for size, systems := range file.Sizes {
		if len(systems) == 0 {
			delete(entries, size)
			continue
		}
		entries[size] = systems
	}
	return NewCatalog(entries)
}
