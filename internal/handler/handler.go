// Package handler routes API Gateway events to the listings pipeline.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/Ronantfs/KL-listings-server/internal/catalog"
	"github.com/Ronantfs/KL-listings-server/internal/config"
	"github.com/Ronantfs/KL-listings-server/internal/listings"
	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

const (
	routeListings       = "listings"
	routeVisualListings = "visual_listings"
	routePanCinema      = "pan_cinema_listings"

	// imageURLTTL is how long presigned image URLs stay valid.
	imageURLTTL = 5 * time.Minute
)

// Handler dispatches requests to the listings routes.
type Handler struct {
	cfg      *config.Config
	listings *listings.Service
	catalog  *catalog.Service
	log      zerolog.Logger
}

// New wires a handler onto the given object store.
func New(store storage.ObjectStore, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		listings: listings.NewService(store, cfg, log),
		catalog:  catalog.NewService(store, cfg, log),
		log:      log,
	}
}

// Handle processes one API Gateway request. Validation failures are answered
// before any store access happens; pipeline degradation (per-cinema fetch
// failures, malformed data) still yields a 200 with a narrower body.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	method := strings.ToUpper(req.HTTPMethod)

	if method == http.MethodOptions {
		return jsonResponse(http.StatusOK, map[string]string{"message": "CORS preflight OK"}), nil
	}
	if method != http.MethodGet {
		h.log.Warn().Str("method", method).Msg("unsupported HTTP method")
		return errorResponse(http.StatusMethodNotAllowed,
			fmt.Sprintf("Unsupported method: %s", method)), nil
	}

	routeType := strings.TrimSpace(req.QueryStringParameters["route_type"])
	if !validRouteType(routeType, config.RouteTypes) {
		return errorResponse(http.StatusBadRequest, "Invalid 'route_type' parameter"), nil
	}

	if routeType == routePanCinema {
		return h.handlePanCinema(ctx, req), nil
	}

	cinemas := listParam(req, "cinemas")
	if !h.validCinemas(cinemas) {
		h.log.Warn().Strs("cinemas", cinemas).Msg("invalid or missing cinemas param")
		return errorResponse(http.StatusBadRequest, "Missing or invalid 'cinemas' parameter"), nil
	}

	dates := listParam(req, "dates")
	if !validDates(dates) {
		h.log.Warn().Strs("dates", dates).Msg("invalid or missing dates param")
		return errorResponse(http.StatusBadRequest, "Missing or invalid 'dates' parameter"), nil
	}

	var body listings.Aggregate
	switch routeType {
	case routeListings:
		body = h.getListings(ctx, cinemas, dates)
	case routeVisualListings:
		body = h.getImageListings(ctx, cinemas, dates)
	}
	return jsonResponse(http.StatusOK, body), nil
}

// getListings runs the plain pipeline: fetch, date filter, redact.
func (h *Handler) getListings(ctx context.Context, cinemas, dates []string) listings.Aggregate {
	aggregate := h.listings.FetchListings(ctx, cinemas)
	filtered := h.listings.FilterByDates(aggregate, dates)
	return h.listings.Redact(filtered)
}

// getImageListings runs the image-enriched pipeline: fetch, date filter,
// image fetch, match, redact.
func (h *Handler) getImageListings(ctx context.Context, cinemas, dates []string) listings.Aggregate {
	aggregate := h.listings.FetchListings(ctx, cinemas)
	filtered := h.listings.FilterByDates(aggregate, dates)
	images := h.listings.FetchImages(ctx, cinemas, imageURLTTL)
	matched := h.listings.MatchImages(filtered, images, cinemas)
	return h.listings.Redact(matched)
}

// handlePanCinema serves the catalog-by-id route. With no id the whole
// catalog is returned; a fetch failure then still answers 200 with the error
// payload, matching the listings routes' degrade-don't-fail behavior. Only an
// explicit id request escalates a fetch failure to 500.
func (h *Handler) handlePanCinema(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	idRaw := strings.TrimSpace(req.QueryStringParameters["id"])

	if idRaw == "" {
		cat, err := h.catalog.Fetch(ctx)
		if err != nil {
			h.log.Error().Err(err).Msg("pan cinema catalog fetch failed")
			return jsonResponse(http.StatusOK, map[string]string{"error": err.Error()})
		}
		return jsonResponse(http.StatusOK, cat)
	}

	id, err := strconv.Atoi(idRaw)
	if err != nil {
		h.log.Warn().Str("id", idRaw).Msg("invalid id param")
		return errorResponse(http.StatusBadRequest, "Invalid 'id' parameter: must be an integer")
	}

	cat, err := h.catalog.Fetch(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("pan cinema catalog fetch failed")
		return errorResponse(http.StatusInternalServerError, err.Error())
	}

	entry, ok := cat.Lookup(id)
	if !ok {
		h.log.Info().Int("id", id).Msg("film id not found in catalog")
		return errorResponse(http.StatusNotFound, "Film not currently showing")
	}

	return jsonResponse(http.StatusOK, entry)
}
