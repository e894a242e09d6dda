package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	catalogrepo "github.com/chapincloud/meterbill/internal/catalog/repository"
	catalogservice "github.com/chapincloud/meterbill/internal/catalog/service"
	invoicedomain "github.com/chapincloud/meterbill/internal/invoice/domain"
	invoicerepo "github.com/chapincloud/meterbill/internal/invoice/repository"
	invoiceservice "github.com/chapincloud/meterbill/internal/invoice/service"
	reportdomain "github.com/chapincloud/meterbill/internal/report/domain"
	"github.com/chapincloud/meterbill/pkg/dates"
	"github.com/chapincloud/meterbill/pkg/docstore"
)

type env struct {
	catalogSvc catalogdomain.Service
	invoiceSvc invoicedomain.Service
	reports    reportdomain.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store, err := docstore.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	logger := zap.NewNop()

	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{
		Log: logger, Repo: catalogrepo.New(store),
	})
	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		Log: logger, Repo: invoicerepo.New(store),
	})
	reports := NewService(ServiceParam{
		Log: logger, CatalogSvc: catalogSvc, InvoiceSvc: invoiceSvc,
	})

	return &env{catalogSvc: catalogSvc, invoiceSvc: invoiceSvc, reports: reports}
}

func (e *env) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.catalogSvc.ReplaceResources(ctx, []catalogdomain.Resource{
		{ID: 1, Name: "vCPU", Abbreviation: "cpu", Metric: "core", Kind: catalogdomain.ResourceKindHardware, PricePerHour: 10},
		{ID: 2, Name: "RAM", Abbreviation: "ram", Metric: "GB", Kind: catalogdomain.ResourceKindHardware, PricePerHour: 2},
		{ID: 3, Name: "OS license", Abbreviation: "os", Metric: "unit", Kind: catalogdomain.ResourceKindSoftware, PricePerHour: 5},
	}))
	require.NoError(t, e.catalogSvc.ReplaceCategories(ctx, []catalogdomain.Category{
		{
			ID:   1,
			Name: "compute",
			Configurations: []catalogdomain.Configuration{
				{ID: 100, Name: "small", Resources: catalogdomain.ResourceQuantities{1: 1, 2: 2}},
				{ID: 101, Name: "licensed", Resources: catalogdomain.ResourceQuantities{3: 1}},
			},
		},
		{
			ID:   2,
			Name: "storage",
			Configurations: []catalogdomain.Configuration{
				{ID: 200, Name: "archive", Resources: catalogdomain.ResourceQuantities{2: 8}},
			},
		},
	}))
}

func (e *env) seedInvoices(t *testing.T, invoices []invoicedomain.Invoice) {
	t.Helper()
	require.NoError(t, e.invoiceSvc.Append(context.Background(), invoices))
}

func day(t *testing.T, value string) dates.Date {
	t.Helper()
	d, err := dates.ParseDate(value)
	require.NoError(t, err)
	return d
}

func march(t *testing.T) billingdomain.Period {
	t.Helper()
	return billingdomain.Period{Start: day(t, "01/03/2024"), End: day(t, "31/03/2024")}
}

func TestCategoryReportRanksConfigurations(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.seedInvoices(t, []invoicedomain.Invoice{
		{
			ID: 1, ClientTaxID: "12345678-9",
			IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"),
			Lines: []invoicedomain.Line{
				{ConfigurationID: 100, Subtotal: 30},
				{ConfigurationID: 200, Subtotal: 80},
			},
		},
		{
			ID: 2, ClientTaxID: "87654321-0",
			IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"),
			Lines: []invoicedomain.Line{
				{ConfigurationID: 100, Subtotal: 25},
			},
		},
	})

	rep, err := e.reports.CategoryReport(context.Background(), march(t))
	require.NoError(t, err)

	require.Len(t, rep.Configurations, 2)
	assert.Equal(t, reportdomain.RevenueRow{ID: 200, Name: "archive", Total: 80}, rep.Configurations[0])
	assert.Equal(t, reportdomain.RevenueRow{ID: 100, Name: "small", Total: 55}, rep.Configurations[1])

	require.Len(t, rep.Categories, 2)
	assert.Equal(t, reportdomain.RevenueRow{ID: 2, Name: "storage", Total: 80}, rep.Categories[0])
	assert.Equal(t, reportdomain.RevenueRow{ID: 1, Name: "compute", Total: 55}, rep.Categories[1])
}

func TestCategoryReportDropsUnmappedConfigurations(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.seedInvoices(t, []invoicedomain.Invoice{
		{
			ID: 1, ClientTaxID: "12345678-9",
			IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"),
			Lines: []invoicedomain.Line{
				{ConfigurationID: 999, Subtotal: 500},
				{ConfigurationID: 100, Subtotal: 10},
			},
		},
	})

	rep, err := e.reports.CategoryReport(context.Background(), march(t))
	require.NoError(t, err)

	// Unmapped configurations still rank, only the categorized view drops them.
	require.Len(t, rep.Configurations, 2)
	assert.Equal(t, int64(999), rep.Configurations[0].ID)
	assert.Empty(t, rep.Configurations[0].Name)

	require.Len(t, rep.Categories, 1)
	assert.Equal(t, int64(1), rep.Categories[0].ID)
}

func TestCategoryReportTieKeepsFirstSeenOrder(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.seedInvoices(t, []invoicedomain.Invoice{
		{
			ID: 1, ClientTaxID: "12345678-9",
			IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"),
			Lines: []invoicedomain.Line{
				{ConfigurationID: 200, Subtotal: 40},
				{ConfigurationID: 100, Subtotal: 40},
			},
		},
	})

	rep, err := e.reports.CategoryReport(context.Background(), march(t))
	require.NoError(t, err)
	require.Len(t, rep.Configurations, 2)
	assert.Equal(t, int64(200), rep.Configurations[0].ID)
	assert.Equal(t, int64(100), rep.Configurations[1].ID)
}

func TestResourceReportSplitsKinds(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.seedInvoices(t, []invoicedomain.Invoice{
		{
			ID: 1, ClientTaxID: "12345678-9",
			IssueDate: day(t, "31/03/2024"), PeriodStart: day(t, "01/03/2024"),
			Lines: []invoicedomain.Line{
				{
					ConfigurationID: 100,
					BilledHours:     2,
					Subtotal:        28,
					Resources:       catalogdomain.ResourceQuantities{1: 1, 2: 2},
				},
				{
					ConfigurationID: 101,
					BilledHours:     4,
					Subtotal:        20,
					Resources:       catalogdomain.ResourceQuantities{3: 1},
				},
			},
		},
	})

	rep, err := e.reports.ResourceReport(context.Background(), march(t))
	require.NoError(t, err)

	// vCPU 1*10*2 = 20, RAM 2*2*2 = 8, OS 1*5*4 = 20.
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, int64(1), rep.Rows[0].ID)
	assert.Equal(t, 20.0, rep.Rows[0].Total)
	assert.Equal(t, int64(3), rep.Rows[1].ID)
	assert.Equal(t, 20.0, rep.Rows[1].Total)
	assert.Equal(t, int64(2), rep.Rows[2].ID)
	assert.Equal(t, 8.0, rep.Rows[2].Total)

	assert.Equal(t, 48.0, rep.GrandTotal)
	assert.Equal(t, 28.0, rep.HardwareTotal)
	assert.Equal(t, 20.0, rep.SoftwareTotal)

	assert.InDelta(t, 41.666, rep.Rows[0].Percent, 0.001)
	assert.InDelta(t, 16.666, rep.Rows[2].Percent, 0.001)
	assert.Equal(t, "vCPU", rep.Rows[0].Name)
	assert.Equal(t, catalogdomain.ResourceKindSoftware, rep.Rows[1].Kind)
}

func TestResourceReportEmptyWindow(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	rep, err := e.reports.ResourceReport(context.Background(), march(t))
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, 0.0, rep.GrandTotal)
}
