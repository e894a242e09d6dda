// Package domain contains the reconciliation request and result types.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chapincloud/meterbill/pkg/dates"
)

// ErrInvalidPeriod rejects a malformed date range before any processing.
var ErrInvalidPeriod = errors.New("invalid_period")

// Period is the closed date interval of one reconciliation run.
type Period struct {
	Start dates.Date `json:"period_start"`
	End   dates.Date `json:"period_end"`
}

// ParsePeriod parses a day/month/year date range.
func ParsePeriod(start, end string) (Period, error) {
	s, err := dates.ParseDate(start)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	e, err := dates.ParseDate(end)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	return Period{Start: s, End: e}, nil
}

// Contains reports whether t falls inside the closed interval.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start.Time) && !t.After(p.End.Time)
}

// ReconcileResult reports how a run went. Errors are recoverable per-line
// failures; the run itself still completed.
type ReconcileResult struct {
	InvoiceCount int      `json:"invoice_count"`
	Errors       []string `json:"errors"`
}

// Service runs billing reconciliation.
type Service interface {
	Reconcile(ctx context.Context, period Period) (ReconcileResult, error)
}
