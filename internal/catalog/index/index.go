// Package index provides the per-run cross-reference over the category
// catalog. An Index is built once per billing or reporting run and passed
// down as a read-only snapshot; it never mutates the source collections.
package index

import (
	"github.com/chapincloud/meterbill/internal/catalog/domain"
)

// Index resolves configuration and category ids in O(1) after an O(n) build.
type Index struct {
	configs          map[int64]domain.Configuration
	categories       map[int64]domain.Category
	categoryByConfig map[int64]int64
}

// Build scans all categories and their owned configurations.
func Build(categories []domain.Category) *Index {
	ix := &Index{
		configs:          make(map[int64]domain.Configuration),
		categories:       make(map[int64]domain.Category, len(categories)),
		categoryByConfig: make(map[int64]int64),
	}
	for _, cat := range categories {
		ix.categories[cat.ID] = cat
		for _, cfg := range cat.Configurations {
			ix.configs[cfg.ID] = cfg
			ix.categoryByConfig[cfg.ID] = cat.ID
		}
	}
	return ix
}

func (ix *Index) ConfigurationByID(id int64) (domain.Configuration, bool) {
	cfg, ok := ix.configs[id]
	return cfg, ok
}

func (ix *Index) CategoryByID(id int64) (domain.Category, bool) {
	cat, ok := ix.categories[id]
	return cat, ok
}

func (ix *Index) CategoryIDForConfiguration(configID int64) (int64, bool) {
	id, ok := ix.categoryByConfig[configID]
	return id, ok
}
