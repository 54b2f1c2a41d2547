package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Opteo/maps/internal/config"
	"github.com/Opteo/maps/internal/logger"
	"github.com/Opteo/maps/internal/nominatim"
	"github.com/Opteo/maps/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Location   string `short:"l" long:"location" description:"Canonical location name" required:"true"`
	Category   string `short:"t" long:"category" description:"Location category (e.g. City, County, Postal Code)" default:"City"`
	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE"  description:"Path to configuration file"`
	APIKey     string `short:"k" long:"api-key"  env:"MAPS_API_KEY" description:"Map image provider API key"`
	Timeout    int    `long:"timeout" description:"Request timeout in seconds" default:"15"`
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	client := &http.Client{Timeout: time.Duration(opts.Timeout) * time.Second}
	fetcher := nominatim.NewClient(client, cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent, cfg.Nominatim.RequestsPerSecond)
	gen := processor.NewGenerator(fetcher, cfg)

	loc := nominatim.Location{Name: opts.Location, Category: opts.Category}

	url, err := gen.GenerateMapURL(context.Background(), loc, opts.APIKey)
	if err != nil {
		log.Fatal().Err(err).Str("location", opts.Location).Msg("Failed to generate map URL")
	}

	fmt.Println(url)
}
