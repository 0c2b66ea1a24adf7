package main

import (
	"context"
	"log"
	"os"

	"github.com/avoronova/filecove/internal/buildinfo"
	"github.com/avoronova/filecove/internal/client/cli"
	"github.com/avoronova/filecove/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("client init error: %v", err)
	}

	app.Run(context.Background())
}
