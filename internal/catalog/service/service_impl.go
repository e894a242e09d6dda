package service

import (
	"context"

	"github.com/chapincloud/meterbill/internal/catalog/domain"
	"github.com/chapincloud/meterbill/internal/catalog/repository"
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
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) ReplaceResources(ctx context.Context, resources []domain.Resource) error {
	if err := s.repo.ReplaceResources(ctx, resources); err != nil {
		return err
	}
	s.log.Info("resource catalog replaced", zap.Int("count", len(resources)))
	return nil
}

func (s *Service) ReplaceCategories(ctx context.Context, categories []domain.Category) error {
	if err := s.repo.ReplaceCategories(ctx, categories); err != nil {
		return err
	}
	s.log.Info("category catalog replaced", zap.Int("count", len(categories)))
	return nil
}

func (s *Service) ListResources(ctx context.Context) ([]domain.Resource, error) {
	return s.repo.LoadResources(ctx)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.LoadCategories(ctx)
}

func (s *Service) ResourcesByID(ctx context.Context) (map[int64]domain.Resource, error) {
	resources, err := s.repo.LoadResources(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}
	return byID, nil
}
