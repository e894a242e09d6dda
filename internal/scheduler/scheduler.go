// Package scheduler triggers reconciliation runs on a cron schedule. It is
// inert unless a cron spec is configured.
package scheduler

import (
	"context"
	"time"

	billingdomain "github.com/chapincloud/meterbill/internal/billing/domain"
	"github.com/chapincloud/meterbill/internal/clock"
	"github.com/chapincloud/meterbill/internal/config"
	"github.com/chapincloud/meterbill/pkg/dates"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(Register),
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Cfg        config.Config
	Clock      clock.Clock
	BillingSvc billingdomain.Service
}

type Scheduler struct {
	log        *zap.Logger
	cfg        config.Config
	clock      clock.Clock
	billingSvc billingdomain.Service
	cron       *cron.Cron
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:        p.Log.Named("scheduler"),
		cfg:        p.Cfg,
		clock:      p.Clock,
		billingSvc: p.BillingSvc,
		cron:       cron.New(),
	}
}

func Register(lc fx.Lifecycle, s *Scheduler) error {
	if s.cfg.BillingCron == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.BillingCron, s.RunPreviousMonth); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.cron.Start()
			s.log.Info("billing schedule active", zap.String("spec", s.cfg.BillingCron))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := s.cron.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

// RunPreviousMonth reconciles the previous calendar month. Re-running after a
// completed month is a no-op: everything inside it is already billed.
func (s *Scheduler) RunPreviousMonth() {
	period := PreviousMonth(s.clock.Now())
	result, err := s.billingSvc.Reconcile(context.Background(), period)
	if err != nil {
		s.log.Error("scheduled reconciliation failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled reconciliation completed",
		zap.Stringer("period_start", period.Start),
		zap.Stringer("period_end", period.End),
		zap.Int("invoices", result.InvoiceCount),
		zap.Int("errors", len(result.Errors)))
}

// PreviousMonth returns the closed interval covering the calendar month
// before the one containing now.
func PreviousMonth(now time.Time) billingdomain.Period {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, time.UTC)
	return billingdomain.Period{
		Start: dates.NewDate(firstOfPrevious),
		End:   dates.NewDate(lastOfPrevious),
	}
}
