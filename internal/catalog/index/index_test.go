package index

import (
	"testing"

	"github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() []domain.Category {
	return []domain.Category{
		{
			ID:   1,
			Name: "compute",
			Configurations: []domain.Configuration{
				{ID: 10, Name: "small"},
				{ID: 11, Name: "large"},
			},
		},
		{
			ID:   2,
			Name: "storage",
			Configurations: []domain.Configuration{
				{ID: 20, Name: "archive"},
			},
		},
	}
}

func TestBuildResolvesConfigurations(t *testing.T) {
	ix := Build(testCategories())

	cfg, ok := ix.ConfigurationByID(11)
	require.True(t, ok)
	assert.Equal(t, "large", cfg.Name)

	_, ok = ix.ConfigurationByID(99)
	assert.False(t, ok)
}

func TestBuildResolvesOwningCategory(t *testing.T) {
	ix := Build(testCategories())

	catID, ok := ix.CategoryIDForConfiguration(20)
	require.True(t, ok)
	assert.Equal(t, int64(2), catID)

	cat, ok := ix.CategoryByID(catID)
	require.True(t, ok)
	assert.Equal(t, "storage", cat.Name)

	_, ok = ix.CategoryIDForConfiguration(10_000)
	assert.False(t, ok)
}

func TestBuildEmptyCatalog(t *testing.T) {
	ix := Build(nil)
	_, ok := ix.ConfigurationByID(1)
	assert.False(t, ok)
}
