package main

import (
	"context"
	"log"

	"github.com/haidang99/oceanchat/internal/server"
	"github.com/haidang99/oceanchat/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
