package catalog

import (
	"github.com/chapincloud/meterbill/internal/catalog/repository"
	"github.com/chapincloud/meterbill/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
