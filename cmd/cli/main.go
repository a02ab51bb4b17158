package main

import (
	"context"
	"log"
	"os"

	"github.com/vkuznecovs/minutekeeper/internal/buildinfo"
	"github.com/vkuznecovs/minutekeeper/internal/client/cli"
	"github.com/vkuznecovs/minutekeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
