// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Opteo/maps/internal/nominatim"
	"github.com/Opteo/maps/internal/processor"
	"github.com/Opteo/maps/internal/staticmap"

	"github.com/rs/zerolog/log"
)

type mapURLResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleMapURL generates a static map URL for the requested location.
// Query parameters: location (canonical name), category.
func (s *ServerContext) HandleMapURL(w http.ResponseWriter, r *http.Request) {
	loc := nominatim.Location{
		Name:     r.URL.Query().Get("location"),
		Category: r.URL.Query().Get("category"),
	}

	url, err := s.Generator.GenerateMapURL(r.Context(), loc, s.APIKey)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, processor.ErrNoLocation):
			status = http.StatusBadRequest
		case errors.Is(err, nominatim.ErrRequestFailed):
			status = http.StatusBadGateway
		case errors.Is(err, staticmap.ErrNoAPIKey):
			// server misconfiguration, not a client problem
			log.Error().Msg("Map URL requested but no provider key is configured")
		}

		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, mapURLResponse{URL: url})
}

// HandleIndex serves the main HTML page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(body)
}
