package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	catalogdomain "github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/internal/catalog/index"
	clientdomain "github.com/chapincloud/meterbill/internal/client/domain"
	"github.com/chapincloud/meterbill/internal/clock"
	consumptiondomain "github.com/chapincloud/meterbill/internal/consumption/domain"
	invoicedomain "github.com/chapincloud/meterbill/internal/invoice/domain"
	obsmetrics "github.com/chapincloud/meterbill/internal/observability/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	CatalogSvc     catalogdomain.Service
	ClientSvc      clientdomain.Service
	ConsumptionSvc consumptiondomain.Service
	InvoiceSvc     invoicedomain.Service
	Metrics        *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	catalogSvc     catalogdomain.Service
	clientSvc      clientdomain.Service
	consumptionSvc consumptiondomain.Service
	invoiceSvc     invoicedomain.Service
	metrics        *obsmetrics.Metrics
}

func NewService(p ServiceParam) billingdomain.Service {
	return &Service{
		log:            p.Log.Named("billing.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		catalogSvc:     p.CatalogSvc,
		clientSvc:      p.ClientSvc,
		consumptionSvc: p.ConsumptionSvc,
		invoiceSvc:     p.InvoiceSvc,
		metrics:        p.Metrics,
	}
}

// Reconcile converts all unbilled consumption inside the period into client
// invoices. Unresolvable instance or resource references are recoverable:
// the affected group stays unbilled (or contributes zero) and the run
// continues. If no client produced a line, nothing is written and the run is
// safe to re-trigger.
func (s *Service) Reconcile(ctx context.Context, period billingdomain.Period) (billingdomain.ReconcileResult, error) {
	started := s.clock.Now()
	log := s.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.Stringer("period_start", period.Start),
		zap.Stringer("period_end", period.End),
	)

	resources, err := s.catalogSvc.ResourcesByID(ctx)
	if err != nil {
		return billingdomain.ReconcileResult{}, err
	}
	categories, err := s.catalogSvc.ListCategories(ctx)
	if err != nil {
		return billingdomain.ReconcileResult{}, err
	}
	ix := index.Build(categories)

	clients, err := s.clientSvc.List(ctx)
	if err != nil {
		return billingdomain.ReconcileResult{}, err
	}
	groups, err := s.consumptionSvc.List(ctx)
	if err != nil {
		return billingdomain.ReconcileResult{}, err
	}

	var invoices []invoicedomain.Invoice
	errs := []string{}

	for _, client := range clients {
		var lines []invoicedomain.Line
		total := decimal.Zero

		for gi := range groups {
			group := &groups[gi]
			if !strings.EqualFold(group.ClientTaxID, client.TaxID) {
				continue
			}

			selected := selectUnbilled(group.Records, period)
			if len(selected) == 0 {
				continue
			}

			hours := 0.0
			for _, ri := range selected {
				hours += group.Records[ri].Hours
			}

			inst, ok := client.InstanceByID(group.InstanceID)
			if !ok {
				errs = append(errs, fmt.Sprintf(
					"no configuration for client %s, instance %d",
					client.TaxID, group.InstanceID))
				continue
			}

			quantities, subtotal := instanceCost(ix, resources, inst.ConfigurationID, hours)
			total = total.Add(subtotal)

			snapshots := make([]invoicedomain.ConsumptionSnapshot, 0, len(selected))
			for _, ri := range selected {
				group.Records[ri].Billed = true
				snapshots = append(snapshots, invoicedomain.ConsumptionSnapshot{
					Hours:     group.Records[ri].Hours,
					Timestamp: group.Records[ri].Timestamp,
				})
			}

			lines = append(lines, invoicedomain.Line{
				InstanceID:      group.InstanceID,
				ConfigurationID: inst.ConfigurationID,
				BilledHours:     hours,
				Subtotal:        subtotal.InexactFloat64(),
				Resources:       quantities,
				Consumptions:    snapshots,
			})
		}

		if len(lines) > 0 {
			invoices = append(invoices, invoicedomain.Invoice{
				ID:          s.genID.Generate(),
				ClientTaxID: client.TaxID,
				IssueDate:   period.End,
				PeriodStart: period.Start,
				Lines:       lines,
				Total:       total.Round(2).InexactFloat64(),
			})
		}
	}

	if len(invoices) > 0 {
		if err := s.invoiceSvc.Append(ctx, invoices); err != nil {
			return billingdomain.ReconcileResult{}, err
		}
		if err := s.consumptionSvc.ReplaceAll(ctx, groups); err != nil {
			return billingdomain.ReconcileResult{}, err
		}
	}

	elapsed := s.clock.Now().Sub(started)
	s.metrics.ObserveRun(len(invoices), len(errs), elapsed.Seconds())
	log.Info("reconciliation completed",
		zap.Int("invoices", len(invoices)),
		zap.Int("errors", len(errs)),
		zap.Duration("elapsed", elapsed))

	return billingdomain.ReconcileResult{InvoiceCount: len(invoices), Errors: errs}, nil
}

// selectUnbilled returns the indexes of records inside the period that have
// not been billed yet. Billed records never qualify again: the flag is a
// one-way transition.
func selectUnbilled(records []consumptiondomain.Record, period billingdomain.Period) []int {
	var selected []int
	for i, rec := range records {
		if rec.Billed || !period.Contains(rec.Timestamp.Time) {
			continue
		}
		selected = append(selected, i)
	}
	return selected
}

// instanceCost prices billedHours of one configuration. An id missing from
// the catalog index yields a zero subtotal, and unknown resource ids inside a
// configuration are skipped without erring; both behaviors are inherited from
// the upstream billing rules.
func instanceCost(
	ix *index.Index,
	resources map[int64]catalogdomain.Resource,
	configID int64,
	billedHours float64,
) (catalogdomain.ResourceQuantities, decimal.Decimal) {
	cfg, ok := ix.ConfigurationByID(configID)
	if !ok {
		return catalogdomain.ResourceQuantities{}, decimal.Zero
	}

	quantities := make(catalogdomain.ResourceQuantities, len(cfg.Resources))
	total := decimal.Zero
	hours := decimal.NewFromFloat(billedHours)
	for rid, qty := range cfg.Resources {
		res, ok := resources[rid]
		if !ok {
			continue
		}
		quantities[rid] = qty
		total = total.Add(
			decimal.NewFromFloat(qty).
				Mul(decimal.NewFromFloat(res.PricePerHour)).
				Mul(hours))
	}
	return quantities, total
}
