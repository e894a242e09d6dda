package domain

import "context"

// Service exposes consumption intake and snapshots.
type Service interface {
	// MergeAppend extends existing groups with the incoming records,
	// creating groups for unseen keys. First-seen group order is preserved.
	MergeAppend(ctx context.Context, groups []Group) error

	// ReplaceAll rewrites the whole collection. The billing engine uses it
	// to persist flipped billed flags.
	ReplaceAll(ctx context.Context, groups []Group) error

	List(ctx context.Context) ([]Group, error)
}
