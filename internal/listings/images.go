package listings

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// imageExtensions are the filename suffixes accepted into an image inventory.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// FetchImages enumerates each requested cinema's good-images folder and
// presigns a URL per kept object, valid for ttl. Enumeration pages through
// the store until it stops reporting truncation. A failed enumeration is a
// per-cinema soft error; a failed presign only leaves that one image without
// a URL.
func (s *Service) FetchImages(ctx context.Context, cinemas []string, ttl time.Duration) ImageAggregate {
	aggregate := make(ImageAggregate, len(cinemas))

	for _, cinema := range cinemas {
		images, err := s.fetchCinemaImages(ctx, cinema, ttl)
		if err != nil {
			s.log.Warn().Str("cinema", cinema).Err(err).Msg("image enumeration failed")
			aggregate[cinema] = ImageInventory{
				Err: fmt.Sprintf("Failed to fetch good images for %s: %v", cinema, err),
			}
			continue
		}
		aggregate[cinema] = ImageInventory{Images: images}
	}

	return aggregate
}

func (s *Service) fetchCinemaImages(ctx context.Context, cinema string, ttl time.Duration) ([]Image, error) {
	folder := s.cfg.GoodImagesFolder(cinema)
	images := []Image{}

	token := ""
	for {
		page, err := s.store.ListObjects(ctx, s.cfg.ImageBucket, folder, token)
		if err != nil {
			return nil, err
		}

		for _, key := range page.Keys {
			if !hasImageExtension(key) {
				continue
			}

			url, err := s.store.PresignGetObject(ctx, s.cfg.ImageBucket, key, ttl)
			if err != nil {
				// Tolerated per object: the image stays listed without a URL.
				s.log.Warn().Str("key", key).Err(err).Msg("presign failed")
				url = ""
			}
			images = append(images, Image{Name: path.Base(key), URL: url})
		}

		if !page.Truncated {
			break
		}
		token = page.NextToken
	}

	return images, nil
}

func hasImageExtension(key string) bool {
	lowered := strings.ToLower(key)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}
