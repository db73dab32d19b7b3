package listings

import (
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// MatchImages joins date-filtered listings to their cinema's image inventory
// by normalized name. An exact match on the normalized title wins; otherwise
// the title may be a prefix of an image stem carrying a language or version
// suffix ("kung_fu_panda" matching "kung_fu_panda_en"). When several stems
// share the prefix the shortest one is chosen, ties broken lexically, so the
// result does not depend on inventory order. Listings with no match are
// dropped; a cinema with no inventory yields an empty collection.
//
// A matched listing gains exactly one field, "image_url".
func (s *Service) MatchImages(aggregate Aggregate, images ImageAggregate, cinemas []string) Aggregate {
	matched := make(Aggregate, len(cinemas))

	for _, cinema := range cinemas {
		inventory := images[cinema]
		matched[cinema] = matchCollection(
			s.log.With().Str("cinema", cinema).Logger(),
			aggregate[cinema], inventory.Images)
	}

	return matched
}

func matchCollection(log zerolog.Logger, collection Collection, images []Image) Collection {
	stems := make(map[string]string, len(images))
	for _, img := range images {
		if img.Name == "" {
			continue
		}
		stem := NormalizeName(strings.TrimSuffix(img.Name, path.Ext(img.Name)))
		stems[stem] = img.URL
	}

	matched := make(Collection, len(collection))
	for title, value := range collection {
		record, ok := value.(map[string]any)
		if !ok {
			continue
		}

		normTitle := NormalizeName(title)
		url, found := stems[normTitle]
		if !found {
			url, found = prefixMatch(log, title, normTitle, stems)
		}
		if !found {
			log.Debug().Str("title", title).Msg("no image matched listing")
			continue
		}

		enriched := make(map[string]any, len(record)+1)
		for k, v := range record {
			enriched[k] = v
		}
		enriched["image_url"] = url
		matched[title] = enriched
	}

	return matched
}

// prefixMatch finds image stems the normalized title is a prefix of and picks
// the shortest, so "kung_fu_panda" prefers "kung_fu_panda_en" over
// "kung_fu_panda_en_subtitled".
func prefixMatch(log zerolog.Logger, title, normTitle string, stems map[string]string) (string, bool) {
	var candidates []string
	for stem := range stems {
		if strings.HasPrefix(stem, normTitle) {
			candidates = append(candidates, stem)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > 1 {
		log.Debug().Str("title", title).Strs("stems", candidates).
			Msg("ambiguous prefix match, taking shortest stem")
	}

	return stems[candidates[0]], true
}
