// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// RouteTypes are the values accepted for the route_type query parameter.
var RouteTypes = []string{"listings", "visual_listings", "pan_cinema_listings"}

// defaultCinemas is the allow-list used when CINEMAS is not set.
var defaultCinemas = []string{
	"barbican",
	"bfi_southbank",
	"castle",
	"close_up",
	"garden_cinema",
	"ica",
	"nickel",
	"prince_charles",
	"regent_street",
	"rio",
	"the_cinema_museum",
	"cine_lumiere",
	"arthouse_crouch_end",
}

// Config holds bucket names, key prefixes and the cinema allow-list.
type Config struct {
	ImageBucket   string
	ImagePrefix   string
	ListingBucket string
	ListingPrefix string
	AWSRegion     string
	LogLevel      string

	// Cinemas is the set of cinema identifiers requests may ask for.
	Cinemas []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured for local runs; inside Lambda it simply won't exist.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ImageBucket:   getEnv("IMAGE_BUCKET", "kinoma-assets"),
		ImagePrefix:   getEnv("IMAGE_PREFIX", "cinema_listings_images"),
		ListingBucket: getEnv("LISTING_BUCKET", "filmfynder"),
		ListingPrefix: getEnv("LISTING_PREFIX", "london/cinema-listings"),
		AWSRegion:     getEnv("AWS_REGION", "eu-north-1"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Cinemas:       defaultCinemas,
	}

	if raw := os.Getenv("CINEMAS"); raw != "" {
		cfg.Cinemas = splitList(raw)
	}

	return cfg
}

// IsKnownCinema reports whether the cinema is on the configured allow-list.
func (c *Config) IsKnownCinema(cinema string) bool {
	for _, known := range c.Cinemas {
		if known == cinema {
			return true
		}
	}
	return false
}

// ActiveListingsKey returns the storage key holding a cinema's listings.
func (c *Config) ActiveListingsKey(cinema string) string {
	return fmt.Sprintf("%s/%s/active_listings.json", c.ListingPrefix, cinema)
}

// GoodImagesFolder returns the storage prefix of a cinema's verified images.
func (c *Config) GoodImagesFolder(cinema string) string {
	return fmt.Sprintf("%s/%s/good/", c.ImagePrefix, cinema)
}

// PanCinemaListingsKey returns the storage key of the cross-cinema catalog.
func (c *Config) PanCinemaListingsKey() string {
	return fmt.Sprintf("%s/all/pan_cinema_listings.json", c.ListingPrefix)
}

func getEnv(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
