package server

import (
	"github.com/Opteo/maps/assets"
	"github.com/Opteo/maps/internal/processor"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Generator *processor.Generator
	APIKey    string
	IndexHTML []byte
}

// NewServerContext initializes the context around a configured generator.
// The provider key is held server-side so clients never see it in the
// request, only in the returned URL.
func NewServerContext(gen *processor.Generator, apiKey string) *ServerContext {
	log.Info().
		Str("nominatim", gen.Config.Nominatim.BaseURL).
		Str("provider", gen.Config.StaticMap.Endpoint).
		Msg("Initializing server context")

	return &ServerContext{
		Generator: gen,
		APIKey:    apiKey,
		IndexHTML: assets.Index,
	}
}
