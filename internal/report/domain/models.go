// Package domain contains the revenue report types consumed by external
// renderers.
package domain

import (
	"context"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
)

// RevenueRow is one ranked entry of a revenue report.
type RevenueRow struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// CategoryReport ranks revenue by configuration and by owning category.
type CategoryReport struct {
	Configurations []RevenueRow `json:"configurations"`
	Categories     []RevenueRow `json:"categories"`
}

// ResourceRow is one ranked resource with its catalog metadata, total
// contribution and share of the grand total.
type ResourceRow struct {
	ID           int64                      `json:"id"`
	Name         string                     `json:"name"`
	Abbreviation string                     `json:"abbreviation"`
	Metric       string                     `json:"metric"`
	Kind         catalogdomain.ResourceKind `json:"kind"`
	PricePerHour float64                    `json:"price_per_hour"`
	Total        float64                    `json:"total"`
	Percent      float64                    `json:"percent"`
}

// ResourceReport ranks revenue by resource with hardware/software subtotals.
type ResourceReport struct {
	Rows          []ResourceRow `json:"rows"`
	HardwareTotal float64       `json:"hardware_total"`
	SoftwareTotal float64       `json:"software_total"`
	GrandTotal    float64       `json:"grand_total"`
}

// Service runs the read-only report queries over the invoice collection.
type Service interface {
	CategoryReport(ctx context.Context, period billingdomain.Period) (CategoryReport, error)
	ResourceReport(ctx context.Context, period billingdomain.Period) (ResourceReport, error)
}
