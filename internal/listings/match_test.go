package listings

import (
	"reflect"
	"testing"
)

func imageURL(record any) string {
	m, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	url, _ := m["image_url"].(string)
	return url
}

func TestMatchImagesExactMatch(t *testing.T) {
	aggregate := Aggregate{
		"bfi_southbank": {"Kung Fu Panda": listingOn("2024-01-15")},
	}
	images := ImageAggregate{
		"bfi_southbank": {Images: []Image{{Name: "Kung Fu Panda.jpg", URL: "https://img/exact"}}},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})

	if url := imageURL(got["bfi_southbank"]["Kung Fu Panda"]); url != "https://img/exact" {
		t.Errorf("image_url = %q, want exact match URL", url)
	}
}

func TestMatchImagesPrefixFallback(t *testing.T) {
	// Image stems may carry language/version suffixes the title lacks.
	aggregate := Aggregate{
		"bfi_southbank": {"Kung Fu Panda": listingOn("2024-01-15")},
	}
	images := ImageAggregate{
		"bfi_southbank": {Images: []Image{{Name: "kung_fu_panda_en.jpg", URL: "https://img/en"}}},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})

	if url := imageURL(got["bfi_southbank"]["Kung Fu Panda"]); url != "https://img/en" {
		t.Errorf("image_url = %q, want prefix-fallback URL", url)
	}
}

func TestMatchImagesExactBeatsPrefix(t *testing.T) {
	aggregate := Aggregate{
		"bfi_southbank": {"Kung Fu Panda": listingOn("2024-01-15")},
	}
	images := ImageAggregate{
		"bfi_southbank": {Images: []Image{
			{Name: "kung_fu_panda_en.jpg", URL: "https://img/en"},
			{Name: "kung_fu_panda.jpg", URL: "https://img/exact"},
		}},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})

	if url := imageURL(got["bfi_southbank"]["Kung Fu Panda"]); url != "https://img/exact" {
		t.Errorf("image_url = %q, exact match must beat prefix fallback", url)
	}
}

func TestMatchImagesPrefixTieBreakIsDeterministic(t *testing.T) {
	// Several stems share the prefix: the shortest must win, regardless of
	// inventory order.
	aggregate := Aggregate{
		"bfi_southbank": {"Kung Fu Panda": listingOn("2024-01-15")},
	}
	inventories := [][]Image{
		{
			{Name: "kung_fu_panda_en_subtitled.jpg", URL: "https://img/long"},
			{Name: "kung_fu_panda_en.jpg", URL: "https://img/short"},
		},
		{
			{Name: "kung_fu_panda_en.jpg", URL: "https://img/short"},
			{Name: "kung_fu_panda_en_subtitled.jpg", URL: "https://img/long"},
		},
	}

	for _, inventory := range inventories {
		images := ImageAggregate{"bfi_southbank": {Images: inventory}}
		got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})
		if url := imageURL(got["bfi_southbank"]["Kung Fu Panda"]); url != "https://img/short" {
			t.Errorf("image_url = %q, want shortest stem regardless of order", url)
		}
	}
}

func TestMatchImagesDropsUnmatchedListings(t *testing.T) {
	aggregate := Aggregate{
		"bfi_southbank": {
			"Kung Fu Panda": listingOn("2024-01-15"),
			"Stalker":       listingOn("2024-01-15"),
		},
	}
	images := ImageAggregate{
		"bfi_southbank": {Images: []Image{{Name: "kung_fu_panda.png", URL: "https://img/1"}}},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})

	if _, ok := got["bfi_southbank"]["Stalker"]; ok {
		t.Error("listing without a matching image should be dropped")
	}
	if _, ok := got["bfi_southbank"]["Kung Fu Panda"]; !ok {
		t.Error("matched listing should be kept")
	}
}

func TestMatchImagesCinemaWithoutInventory(t *testing.T) {
	aggregate := Aggregate{
		"bfi_southbank": {"Kung Fu Panda": listingOn("2024-01-15")},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, ImageAggregate{}, []string{"bfi_southbank"})

	want := Aggregate{"bfi_southbank": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cinema absent from image aggregate should yield an empty collection, got %v", got)
	}
}

func TestMatchImagesAddsOnlyImageURL(t *testing.T) {
	original := listingOn("2024-01-15")
	aggregate := Aggregate{"bfi_southbank": {"Kung Fu Panda": original}}
	images := ImageAggregate{
		"bfi_southbank": {Images: []Image{{Name: "kung_fu_panda.jpg", URL: "https://img/1"}}},
	}

	got := newTestService(&stubStore{}).MatchImages(aggregate, images, []string{"bfi_southbank"})

	matched := got["bfi_southbank"]["Kung Fu Panda"].(map[string]any)
	if len(matched) != len(original)+1 {
		t.Errorf("matcher added %d fields, want exactly 1", len(matched)-len(original))
	}
	if _, ok := original["image_url"]; ok {
		t.Error("matcher must not mutate its input")
	}
}
