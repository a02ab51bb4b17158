package main

import (
	"context"
	"log"
	"os"

	"github.com/vkuznecovs/minutekeeper/internal/buildinfo"
	"github.com/vkuznecovs/minutekeeper/internal/relay"
	"github.com/vkuznecovs/minutekeeper/internal/relay/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := relay.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
