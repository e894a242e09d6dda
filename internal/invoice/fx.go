package invoice

import (
	"github.com/chapincloud/meterbill/internal/invoice/repository"
	"github.com/chapincloud/meterbill/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
