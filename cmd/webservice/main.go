package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/alimikegami/pos-microservices/storefront-service/config"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()

	server := app.App{
		Config: config,
	}

	if err := server.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up server")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop server cleanly")
	}
}
