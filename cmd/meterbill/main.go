package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/chapincloud/meterbill/internal/clock"
	"github.com/chapincloud/meterbill/internal/config"
	obsmetrics "github.com/chapincloud/meterbill/internal/observability/metrics"
	"github.com/chapincloud/meterbill/internal/scheduler"
	"github.com/chapincloud/meterbill/internal/server"
	"github.com/chapincloud/meterbill/pkg/docstore"
	"github.com/chapincloud/meterbill/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		docstore.Module,
		obsmetrics.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
