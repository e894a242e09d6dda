package service

import (
	"context"
	"strings"

	"github.com/chapincloud/meterbill/internal/client/domain"
	"github.com/chapincloud/meterbill/internal/client/repository"
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
		log:  p.Log.Named("client.service"),
		repo: p.Repo,
	}
}

func (s *Service) ReplaceAll(ctx context.Context, clients []domain.Client) error {
	if err := s.repo.ReplaceAll(ctx, clients); err != nil {
		return err
	}
	s.log.Info("client collection replaced", zap.Int("count", len(clients)))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.LoadAll(ctx)
}

func (s *Service) GetByTaxID(ctx context.Context, taxID string) (domain.Client, error) {
	clients, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	for _, c := range clients {
		if strings.EqualFold(c.TaxID, taxID) {
			return c, nil
		}
	}
	return domain.Client{}, domain.ErrNotFound
}
