package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/andresuchdata/autoorder/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("replenish failed")
	}
}
