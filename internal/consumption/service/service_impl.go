package service

import (
	"context"

	"github.com/chapincloud/meterbill/internal/consumption/domain"
	"github.com/chapincloud/meterbill/internal/consumption/repository"
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
		log:  p.Log.Named("consumption.service"),
		repo: p.Repo,
	}
}

func (s *Service) MergeAppend(ctx context.Context, groups []domain.Group) error {
	if len(groups) == 0 {
		return nil
	}
	if err := s.repo.MergeAppend(ctx, groups); err != nil {
		return err
	}
	records := 0
	for _, g := range groups {
		records += len(g.Records)
	}
	s.log.Info("consumption merged",
		zap.Int("groups", len(groups)),
		zap.Int("records", records))
	return nil
}

func (s *Service) ReplaceAll(ctx context.Context, groups []domain.Group) error {
	return s.repo.ReplaceAll(ctx, groups)
}

func (s *Service) List(ctx context.Context) ([]domain.Group, error) {
	return s.repo.LoadAll(ctx)
}
