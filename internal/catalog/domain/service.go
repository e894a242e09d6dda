package domain

import "context"

// Service exposes catalog intake and lookups for external renderers.
type Service interface {
	ReplaceResources(ctx context.Context, resources []Resource) error
	ReplaceCategories(ctx context.Context, categories []Category) error

	ListResources(ctx context.Context) ([]Resource, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// ResourcesByID returns the id-keyed resource catalog used by billing,
	// reporting and external invoice renderers.
	ResourcesByID(ctx context.Context) (map[int64]Resource, error)
}
