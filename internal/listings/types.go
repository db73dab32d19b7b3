// Package listings implements the cinema-listings aggregation pipeline:
// fetch per-cinema listing collections and image inventories from the object
// store, narrow them by requested dates, join listings to images by
// normalized name, and redact internal fields before the response leaves the
// service.
package listings

import (
	"github.com/rs/zerolog"

	"github.com/Ronantfs/KL-listings-server/internal/config"
	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

// Collection maps a listing title to its record. Records stay as decoded JSON
// (map[string]any) so fields the pipeline doesn't know about pass through
// untouched. A collection may instead be an error marker {"error": reason}
// when the fetch for its cinema failed; downstream stages treat the marker's
// entry as malformed and drop it.
type Collection map[string]any

// Aggregate maps a cinema name to its listing collection.
type Aggregate map[string]Collection

// Image is one entry of a cinema's image inventory. Name is the base filename
// (extension included) and is only used for matching; URL is a time-limited
// access URL, empty when generation failed for that object.
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ImageInventory is the result of enumerating one cinema's good-images
// folder. Err carries the per-cinema soft failure reason; when it is set,
// Images is empty.
type ImageInventory struct {
	Images []Image
	Err    string
}

// ImageAggregate maps a cinema name to its image inventory.
type ImageAggregate map[string]ImageInventory

// redactedFields are internal provenance fields stripped from every listing
// before a response leaves the core.
var redactedFields = map[string]struct{}{
	"image_to_download": {},
	"isImageGood":       {},
	"s3ImageURL":        {},
}

// Service runs the pipeline against an injected object store. Transform
// stages are pure over their inputs; the store is only touched by the two
// fetchers.
type Service struct {
	store storage.ObjectStore
	cfg   *config.Config
	log   zerolog.Logger
}

// NewService builds a pipeline service.
func NewService(store storage.ObjectStore, cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

func errorCollection(reason string) Collection {
	return Collection{"error": reason}
}
