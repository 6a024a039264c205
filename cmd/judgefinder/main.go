package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/config"
	"github.com/judgefinder/platform/internal/migration"
	"github.com/judgefinder/platform/internal/observability"
	"github.com/judgefinder/platform/internal/server"
	"github.com/judgefinder/platform/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
