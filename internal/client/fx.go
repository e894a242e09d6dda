package client

import (
	"github.com/chapincloud/meterbill/internal/client/repository"
	"github.com/chapincloud/meterbill/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
