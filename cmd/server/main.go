package main

import (
	"context"
	"log"

	"github.com/careerhub/jobportal/internal/server"
	"github.com/careerhub/jobportal/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("jobportal: %v", err)
	}

	app.Run(context.Background())
}
