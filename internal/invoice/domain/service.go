package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/chapincloud/meterbill/pkg/dates"
)

// Service exposes invoice lookups for external renderers and reporting.
type Service interface {
	GetByID(ctx context.Context, id snowflake.ID) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)

	// Append persists newly generated invoices without touching the ones
	// already stored. Only the billing engine creates invoices.
	Append(ctx context.Context, invoices []Invoice) error

	// ListIssuedBetween returns invoices whose issue date falls inside the
	// closed interval [start, end], preserving stored order.
	ListIssuedBetween(ctx context.Context, start, end dates.Date) ([]Invoice, error)
}
