// Package catalog loads and indexes recipe records.
// Records are JSON files under <dir>/bases and <dir>/flavors. The
// loaded catalog is an immutable snapshot; hot reload swaps whole
// snapshots through a Store.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sodacraft/core/types"
	"sodacraft/internal/errors"
	"sodacraft/internal/logging"
)

// Catalog is an immutable snapshot of all loaded recipe records.
type Catalog struct {
	bases   map[string]*types.BaseRecipe
	flavors map[string]*types.FlavorRecipe
}

// LoadDir loads every recipe record under dir.
// Layout: dir/bases/*.json and dir/flavors/*.json.
func LoadDir(dir string) (*Catalog, error) {
	c := &Catalog{
		bases:   make(map[string]*types.BaseRecipe),
		flavors: make(map[string]*types.FlavorRecipe),
	}

	baseFiles, err := recordFiles(filepath.Join(dir, "bases"))
	if err != nil {
		return nil, err
	}
	for _, file := range baseFiles {
		var base types.BaseRecipe
		if err := readRecord(file, &base); err != nil {
			return nil, err
		}
		if err := base.Validate(); err != nil {
			return nil, errors.Parsing("invalid base recipe in "+file, err)
		}
		if _, ok := c.bases[base.ID]; ok {
			return nil, errors.Newf(errors.TypeParsing, "duplicate base recipe id %q in %s", base.ID, file)
		}
		c.bases[base.ID] = &base
	}

	flavorFiles, err := recordFiles(filepath.Join(dir, "flavors"))
	if err != nil {
		return nil, err
	}
	for _, file := range flavorFiles {
		var flavor types.FlavorRecipe
		if err := readRecord(file, &flavor); err != nil {
			return nil, err
		}
		if err := flavor.Validate(); err != nil {
			return nil, errors.Parsing("invalid flavor recipe in "+file, err)
		}
		if _, ok := c.flavors[flavor.ID]; ok {
			return nil, errors.Newf(errors.TypeParsing, "duplicate flavor recipe id %q in %s", flavor.ID, file)
		}
		c.flavors[flavor.ID] = &flavor
	}

	// Dangling compatibility references are tolerated: a flavor may ship
	// ahead of the base it targets.
	for _, flavor := range c.flavors {
		for _, baseID := range flavor.CompatibleBases {
			if _, ok := c.bases[baseID]; !ok {
				logging.Warn("flavor references unknown base",
					zap.String("flavor_id", flavor.ID),
					zap.String("base_id", baseID))
			}
		}
	}

	return c, nil
}

// Base returns the base recipe with the given id
func (c *Catalog) Base(id string) (*types.BaseRecipe, bool) {
	base, ok := c.bases[id]
	return base, ok
}

// Flavor returns the flavor recipe with the given id
func (c *Catalog) Flavor(id string) (*types.FlavorRecipe, bool) {
	flavor, ok := c.flavors[id]
	return flavor, ok
}

// Bases returns all base recipes ordered by id
func (c *Catalog) Bases() []*types.BaseRecipe {
	out := make([]*types.BaseRecipe, 0, len(c.bases))
	for _, base := range c.bases {
		out = append(out, base)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Flavors returns all flavor recipes ordered by id
func (c *Catalog) Flavors() []*types.FlavorRecipe {
	out := make([]*types.FlavorRecipe, 0, len(c.flavors))
	for _, flavor := range c.flavors {
		out = append(out, flavor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CompatibleFlavors returns every flavor whose compatibility set
// includes the given base, ordered by id
func (c *Catalog) CompatibleFlavors(baseID string) []*types.FlavorRecipe {
	var out []*types.FlavorRecipe
	for _, flavor := range c.Flavors() {
		if flavor.CompatibleWith(baseID) {
			out = append(out, flavor)
		}
	}
	return out
}

// CheckCompatible confirms the flavor's compatibility set includes the
// base. This is the caller-side gate the calculator itself does not
// enforce.
func (c *Catalog) CheckCompatible(base *types.BaseRecipe, flavor *types.FlavorRecipe) error {
	if flavor == nil {
		return nil
	}
	if !flavor.CompatibleWith(base.ID) {
		return errors.Incompatible(flavor.ID, base.ID)
	}
	return nil
}

func recordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Parsing("failed to read recipe directory "+dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func readRecord(file string, v interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Parsing("failed to read recipe file "+file, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Parsing("failed to parse recipe file "+file, err)
	}
	return nil
}
