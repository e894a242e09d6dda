package consumption

import (
	"github.com/chapincloud/meterbill/internal/consumption/repository"
	"github.com/chapincloud/meterbill/internal/consumption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumption.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
