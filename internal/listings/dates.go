package listings

import "github.com/rs/zerolog"

// FilterByDates narrows every cinema's collection to listings with at least
// one showing on a requested date. An empty date set applies no filtering at
// all, so "no dates requested" stays distinct from "no dates matched".
// Cinemas whose collection empties out are dropped from the result.
func (s *Service) FilterByDates(aggregate Aggregate, dates []string) Aggregate {
	filtered := make(Aggregate, len(aggregate))

	for cinema, collection := range aggregate {
		narrowed := filterCollectionByDates(s.log.With().Str("cinema", cinema).Logger(), collection, dates)
		if len(narrowed) > 0 {
			filtered[cinema] = narrowed
		}
	}

	return filtered
}

// filterCollectionByDates keeps, per listing, only the "when" entries whose
// date is in the requested set. Listings left with no showings are dropped,
// as are listings whose "when" field is not a sequence of records. Showing
// order is preserved.
func filterCollectionByDates(log zerolog.Logger, collection Collection, dates []string) Collection {
	if len(dates) == 0 {
		return collection
	}

	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[d] = struct{}{}
	}

	filtered := make(Collection, len(collection))
	for title, value := range collection {
		record, ok := value.(map[string]any)
		if !ok {
			log.Debug().Str("title", title).Msg("dropping non-record listing during date filter")
			continue
		}

		entries, ok := record["when"].([]any)
		if !ok {
			log.Debug().Str("title", title).Msg("dropping listing with malformed showings")
			continue
		}

		var kept []any
		for _, entry := range entries {
			rec, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if date, _ := rec["date"].(string); date != "" {
				if _, want := wanted[date]; want {
					kept = append(kept, entry)
				}
			}
		}
		if len(kept) == 0 {
			continue
		}

		narrowed := make(map[string]any, len(record))
		for k, v := range record {
			narrowed[k] = v
		}
		narrowed["when"] = kept
		filtered[title] = narrowed
	}

	return filtered
}
