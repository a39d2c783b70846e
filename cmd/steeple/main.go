package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/config"
	"github.com/steeplehq/steeple/internal/migration"
	"github.com/steeplehq/steeple/internal/observability"
	"github.com/steeplehq/steeple/internal/server"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
