package franchise

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
)

//go:embed franchises.yaml
var embeddedTable []byte

type tableFile struct {
	Franchises []franchises.Franchise `yaml:"franchises" validate:"required,min=1,dive"`
}

// Load reads the franchise table from path, or the embedded table when path is empty.
func Load(path string) ([]franchises.Franchise, error) {
	if path == "" {
		return Parse(embeddedTable)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read franchise table %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a franchise table.
// Codes, provider ids and lineage codes must each be unique across the table.
func Parse(data []byte) ([]franchises.Franchise, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode franchise table: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("validate franchise table: %w", err)
	}

	codes := make(map[string]struct{}, len(file.Franchises))
	ids := make(map[int]string)
	lineage := make(map[string]string)
	for i := range file.Franchises {
		f := &file.Franchises[i]
		f.Code = strings.ToUpper(f.Code)
		f.Known = true
		if _, dup := codes[f.Code]; dup {
			return nil, fmt.Errorf("duplicate franchise code %s", f.Code)
		}
		codes[f.Code] = struct{}{}
		for _, id := range f.ProviderIDs {
			if owner, dup := ids[id]; dup {
				return nil, fmt.Errorf("provider id %d mapped to both %s and %s", id, owner, f.Code)
			}
			ids[id] = f.Code
		}
		for j, code := range f.Lineage {
			code = strings.ToUpper(code)
			f.Lineage[j] = code
			if owner, dup := lineage[code]; dup {
				return nil, fmt.Errorf("lineage code %s claimed by both %s and %s", code, owner, f.Code)
			}
			lineage[code] = f.Code
		}
	}
	return file.Franchises, nil
}
