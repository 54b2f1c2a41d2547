package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"time"

	"github.com/Opteo/maps/internal/config"
	"github.com/Opteo/maps/internal/logger"
	"github.com/Opteo/maps/internal/nominatim"
	"github.com/Opteo/maps/internal/processor"

	"github.com/chai2010/webp"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Location   string `short:"l" long:"location" description:"Canonical location name" required:"true"`
	Category   string `short:"t" long:"category" description:"Location category (e.g. City, County, Postal Code)" default:"City"`
	Output     string `short:"o" long:"out"      description:"Output file path" default:"preview.webp"`
	Width      int    `short:"w" long:"width"    description:"Resize output to this width, keeping aspect ratio"`
	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE"  description:"Path to configuration file"`
	APIKey     string `short:"k" long:"api-key"  env:"MAPS_API_KEY" description:"Map image provider API key"`
	Quality    int    `short:"q" long:"quality"  description:"WebP quality" default:"85"`
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

	client := &http.Client{Timeout: 30 * time.Second}
	fetcher := nominatim.NewClient(client, cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent, cfg.Nominatim.RequestsPerSecond)
	gen := processor.NewGenerator(fetcher, cfg)

	loc := nominatim.Location{Name: opts.Location, Category: opts.Category}

	url, err := gen.GenerateMapURL(context.Background(), loc, opts.APIKey)
	if err != nil {
		log.Fatal().Err(err).Str("location", opts.Location).Msg("Failed to generate map URL")
	}

	log.Info().Str("location", opts.Location).Msg("Fetching map image")

	img, err := fetchImage(client, url)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch map image")
	}

	if opts.Width > 0 && img.Bounds().Dx() != opts.Width {
		img = resizeToWidth(img, opts.Width)
	}

	if err := writeWebP(opts.Output, img, float32(opts.Quality)); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
	}

	log.Info().
		Str("path", opts.Output).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Preview saved")
}

// fetchImage performs the GET the library itself never issues: the
// generated URL is handed to the provider and the response decoded.
func fetchImage(client *http.Client, url string) (image.Image, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

func resizeToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	return dst
}

func writeWebP(path string, img image.Image, quality float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: quality})
}
