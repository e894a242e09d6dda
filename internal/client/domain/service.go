package domain

import "context"

// Service exposes client intake and lookups.
type Service interface {
	ReplaceAll(ctx context.Context, clients []Client) error
	List(ctx context.Context) ([]Client, error)
	GetByTaxID(ctx context.Context, taxID string) (Client, error)
}
