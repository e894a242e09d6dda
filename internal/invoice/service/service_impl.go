package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/chapincloud/meterbill/internal/invoice/domain"
	"github.com/chapincloud/meterbill/internal/invoice/repository"
	"github.com/chapincloud/meterbill/pkg/dates"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo *repository.Repository
}

type Service struct {
	log  *zap.Logger
	repo *repository.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:  p.Log.Named("invoice.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	invoices, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, domain.ErrNotFound
}

func (s *Service) Append(ctx context.Context, invoices []domain.Invoice) error {
	if err := s.repo.Append(ctx, invoices); err != nil {
		return err
	}
	s.log.Info("invoices appended", zap.Int("count", len(invoices)))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.LoadAll(ctx)
}

func (s *Service) ListIssuedBetween(ctx context.Context, start, end dates.Date) ([]domain.Invoice, error) {
	invoices, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.IssueDate.Before(start.Time) || inv.IssueDate.After(end.Time) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return filtered, nil
}
