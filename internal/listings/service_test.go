package listings

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ronantfs/KL-listings-server/internal/config"
	"github.com/Ronantfs/KL-listings-server/internal/storage"
)

// stubStore is an in-memory ObjectStore for pipeline tests.
type stubStore struct {
	objects map[string][]byte // "bucket/key" -> body
	getErr  map[string]error  // "bucket/key" -> forced error

	pages     []storage.Page // returned in order by ListObjects
	listErr   error
	listCalls []string // continuation tokens seen

	presignErr map[string]error // key -> forced presign error
	getCalls   int
}

func (s *stubStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	s.getCalls++
	addr := bucket + "/" + key
	if err, ok := s.getErr[addr]; ok {
		return nil, err
	}
	if body, ok := s.objects[addr]; ok {
		return body, nil
	}
	return nil, errNoSuchKey()
}

func (s *stubStore) ListObjects(_ context.Context, _, _, token string) (storage.Page, error) {
	s.listCalls = append(s.listCalls, token)
	if s.listErr != nil {
		return storage.Page{}, s.listErr
	}
	i := len(s.listCalls) - 1
	if i >= len(s.pages) {
		return storage.Page{}, nil
	}
	return s.pages[i], nil
}

func (s *stubStore) PresignGetObject(_ context.Context, _, key string, _ time.Duration) (string, error) {
	if err, ok := s.presignErr[key]; ok {
		return "", err
	}
	return "https://signed.example/" + key, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ImageBucket:   "test-images",
		ImagePrefix:   "cinema_listings_images",
		ListingBucket: "test-listings",
		ListingPrefix: "london/cinema-listings",
		Cinemas:       []string{"bfi_southbank", "prince_charles", "rio"},
	}
}

func newTestService(store *stubStore) *Service {
	return NewService(store, testConfig(), zerolog.Nop())
}

// showing builds one "when" entry for a date.
func showing(date string, times ...string) map[string]any {
	showtimes := make([]any, 0, len(times))
	for _, tm := range times {
		showtimes = append(showtimes, tm)
	}
	return map[string]any{"date": date, "showtimes": showtimes}
}

// listingOn builds a listing record showing on the given dates.
func listingOn(dates ...string) map[string]any {
	when := make([]any, 0, len(dates))
	for _, d := range dates {
		when = append(when, showing(d, "18:30"))
	}
	return map[string]any{
		"description": "a film",
		"when":        when,
	}
}
