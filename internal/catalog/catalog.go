// Package catalog serves the pre-aggregated cross-cinema listings object,
// keyed by external film database id. This is a plain key lookup, not part of
// the transformation pipeline.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Ronantfs/KL-listings-server/internal/config"
	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

// Catalog maps a film's external database id (decimal string, as JSON object
// keys are strings) to its per-cinema listings. Entries are kept as raw JSON;
// the service never looks inside them.
type Catalog map[string]json.RawMessage

// Service fetches and queries the pan-cinema catalog.
type Service struct {
	store storage.ObjectStore
	cfg   *config.Config
	log   zerolog.Logger
}

// NewService builds a catalog service.
func NewService(store storage.ObjectStore, cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Fetch retrieves the whole catalog object.
func (s *Service) Fetch(ctx context.Context) (Catalog, error) {
	key := s.cfg.PanCinemaListingsKey()

	body, err := s.store.GetObject(ctx, s.cfg.ListingBucket, key)
	if err != nil {
		return nil, fmt.Errorf("Failed to load pan cinema listings: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("Failed to load pan cinema listings: %w", err)
	}

	return catalog, nil
}

// Lookup returns the catalog entry for the given film id, or ok=false when
// the film is not in the catalog.
func (c Catalog) Lookup(id int) (json.RawMessage, bool) {
	entry, ok := c[strconv.Itoa(id)]
	return entry, ok
}
