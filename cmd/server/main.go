package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Opteo/maps/internal/config"
	"github.com/Opteo/maps/internal/logger"
	"github.com/Opteo/maps/internal/nominatim"
	"github.com/Opteo/maps/internal/processor"
	"github.com/Opteo/maps/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"    description:"Path to configuration file"`
	Addr       string `short:"a" long:"addr"    env:"LISTEN_ADDRESS" description:"Address to listen on"        default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"    env:"LISTEN_PORT"    description:"Port to listen on"           default:"8080"`
	APIKey     string `short:"k" long:"api-key" env:"MAPS_API_KEY"   description:"Map image provider API key"`
}

func main() {
	// optional .env next to the binary
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	if opts.APIKey == "" {
		log.Fatal().Msg("No provider API key configured (set MAPS_API_KEY)")
	}

	// Load Config
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	client := &http.Client{Timeout: 15 * time.Second}
	fetcher := nominatim.NewClient(client, cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent, cfg.Nominatim.RequestsPerSecond)
	srvCtx := server.NewServerContext(processor.NewGenerator(fetcher, cfg), opts.APIKey)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/map-url", srvCtx.HandleMapURL)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("nominatim", cfg.Nominatim.BaseURL).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
