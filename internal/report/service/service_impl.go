package service

import (
	"context"
	"sort"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/internal/catalog/index"
	invoicedomain "github.com/chapincloud/meterbill/internal/invoice/domain"
	reportdomain "github.com/chapincloud/meterbill/internal/report/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	CatalogSvc catalogdomain.Service
	InvoiceSvc invoicedomain.Service
}

type Service struct {
	log        *zap.Logger
	catalogSvc catalogdomain.Service
	invoiceSvc invoicedomain.Service
}

func NewService(p ServiceParam) reportdomain.Service {
	return &Service{
		log:        p.Log.Named("report.service"),
		catalogSvc: p.CatalogSvc,
		invoiceSvc: p.InvoiceSvc,
	}
}

// accumulator sums totals per id while remembering first-seen order, so ties
// rank deterministically.
type accumulator struct {
	totals map[int64]decimal.Decimal
	order  []int64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[int64]decimal.Decimal)}
}

func (a *accumulator) add(id int64, amount decimal.Decimal) {
	if _, ok := a.totals[id]; !ok {
		a.order = append(a.order, id)
	}
	a.totals[id] = a.totals[id].Add(amount)
}

// ranked returns (id, total) pairs sorted strictly non-increasing by total,
// first-seen order preserved on ties.
func (a *accumulator) ranked() []rankedEntry {
	out := make([]rankedEntry, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, rankedEntry{ID: id, Total: a.totals[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

type rankedEntry struct {
	ID    int64
	Total decimal.Decimal
}

func (s *Service) CategoryReport(ctx context.Context, period billingdomain.Period) (reportdomain.CategoryReport, error) {
	invoices, err := s.invoiceSvc.ListIssuedBetween(ctx, period.Start, period.End)
	if err != nil {
		return reportdomain.CategoryReport{}, err
	}
	categories, err := s.catalogSvc.ListCategories(ctx)
	if err != nil {
		return reportdomain.CategoryReport{}, err
	}
	ix := index.Build(categories)

	configs := newAccumulator()
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			configs.add(line.ConfigurationID, decimal.NewFromFloat(line.Subtotal))
		}
	}
	rankedConfigs := configs.ranked()

	// Category totals group the ranked configuration totals through the
	// index; configurations without an owning category are dropped here
	// (not erred), never from the configuration ranking itself.
	cats := newAccumulator()
	for _, entry := range rankedConfigs {
		catID, ok := ix.CategoryIDForConfiguration(entry.ID)
		if !ok {
			continue
		}
		cats.add(catID, entry.Total)
	}

	report := reportdomain.CategoryReport{
		Configurations: make([]reportdomain.RevenueRow, 0, len(rankedConfigs)),
		Categories:     make([]reportdomain.RevenueRow, 0, len(cats.order)),
	}
	for _, entry := range rankedConfigs {
		row := reportdomain.RevenueRow{ID: entry.ID, Total: entry.Total.InexactFloat64()}
		if cfg, ok := ix.ConfigurationByID(entry.ID); ok {
			row.Name = cfg.Name
		}
		report.Configurations = append(report.Configurations, row)
	}
	for _, entry := range cats.ranked() {
		row := reportdomain.RevenueRow{ID: entry.ID, Total: entry.Total.InexactFloat64()}
		if cat, ok := ix.CategoryByID(entry.ID); ok {
			row.Name = cat.Name
		}
		report.Categories = append(report.Categories, row)
	}
	return report, nil
}

func (s *Service) ResourceReport(ctx context.Context, period billingdomain.Period) (reportdomain.ResourceReport, error) {
	invoices, err := s.invoiceSvc.ListIssuedBetween(ctx, period.Start, period.End)
	if err != nil {
		return reportdomain.ResourceReport{}, err
	}
	resources, err := s.catalogSvc.ResourcesByID(ctx)
	if err != nil {
		return reportdomain.ResourceReport{}, err
	}

	acc := newAccumulator()
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			hours := decimal.NewFromFloat(line.BilledHours)
			rids := make([]int64, 0, len(line.Resources))
			for rid := range line.Resources {
				rids = append(rids, rid)
			}
			// Ascending id iteration keeps first-seen order, and with it
			// tie ranking, deterministic.
			sort.Slice(rids, func(i, j int) bool { return rids[i] < rids[j] })
			for _, rid := range rids {
				res, ok := resources[rid]
				if !ok {
					continue
				}
				contribution := decimal.NewFromFloat(line.Resources[rid]).
					Mul(decimal.NewFromFloat(res.PricePerHour)).
					Mul(hours)
				acc.add(rid, contribution)
			}
		}
	}

	ranked := acc.ranked()
	grand := decimal.Zero
	for _, entry := range ranked {
		grand = grand.Add(entry.Total)
	}

	report := reportdomain.ResourceReport{
		Rows:       make([]reportdomain.ResourceRow, 0, len(ranked)),
		GrandTotal: grand.InexactFloat64(),
	}
	hardware, software := decimal.Zero, decimal.Zero
	for _, entry := range ranked {
		res := resources[entry.ID]
		row := reportdomain.ResourceRow{
			ID:           entry.ID,
			Name:         res.Name,
			Abbreviation: res.Abbreviation,
			Metric:       res.Metric,
			Kind:         res.Kind,
			PricePerHour: res.PricePerHour,
			Total:        entry.Total.InexactFloat64(),
		}
		if grand.IsPositive() {
			row.Percent, _ = entry.Total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
		}
		switch res.Kind {
		case catalogdomain.ResourceKindHardware:
			hardware = hardware.Add(entry.Total)
		case catalogdomain.ResourceKindSoftware:
			software = software.Add(entry.Total)
		}
		report.Rows = append(report.Rows, row)
	}
	report.HardwareTotal = hardware.InexactFloat64()
	report.SoftwareTotal = software.InexactFloat64()
	return report, nil
}
