package listings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

// FetchListings retrieves and decodes each requested cinema's active-listings
// object. Failures are per-cinema: a missing or unreadable object becomes an
// error marker in that cinema's slot and never aborts the others. The result
// always has exactly one entry per requested cinema.
func (s *Service) FetchListings(ctx context.Context, cinemas []string) Aggregate {
	aggregate := make(Aggregate, len(cinemas))

	for _, cinema := range cinemas {
		key := s.cfg.ActiveListingsKey(cinema)

		body, err := s.store.GetObject(ctx, s.cfg.ListingBucket, key)
		if err != nil {
			if storage.IsNotFound(err) {
				aggregate[cinema] = errorCollection(
					fmt.Sprintf("No active listings found for %s", cinema))
				continue
			}
			s.log.Warn().Str("cinema", cinema).Str("key", key).Err(err).
				Msg("listings fetch failed")
			aggregate[cinema] = errorCollection(
				fmt.Sprintf("Failed to load listings for %s: %v", cinema, err))
			continue
		}

		var collection Collection
		if err := json.Unmarshal(body, &collection); err != nil {
			s.log.Warn().Str("cinema", cinema).Str("key", key).Err(err).
				Msg("listings decode failed")
			aggregate[cinema] = errorCollection(
				fmt.Sprintf("Failed to load listings for %s: %v", cinema, err))
			continue
		}

		aggregate[cinema] = collection
	}

	return aggregate
}
