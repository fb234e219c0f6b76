package main

import (
	"context"
	"log"
	"os"

	"github.com/passdoo/desktop-cli/internal/buildinfo"
	"github.com/passdoo/desktop-cli/internal/client/cli"
	"github.com/passdoo/desktop-cli/internal/client/config"
	"github.com/passdoo/desktop-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, logging.NewDevelopment())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
