// Package storage abstracts the object store the listings pipeline reads from.
//
// The pipeline never talks to S3 directly; it receives an ObjectStore so tests
// can substitute a stub without patching globals.
package storage

import (
	"context"
	"time"
)

// Page is one page of an object listing.
type Page struct {
	Keys      []string
	NextToken string
	Truncated bool
}

// ObjectStore is the read-only view of the object store the pipeline needs.
type ObjectStore interface {
	// GetObject fetches the full body of an object.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// ListObjects returns one page of keys under prefix. Pass the previous
	// page's NextToken to continue; an empty token starts from the beginning.
	ListObjects(ctx context.Context, bucket, prefix, continuationToken string) (Page, error)

	// PresignGetObject returns a temporary URL granting read access to the
	// object for the given TTL.
	PresignGetObject(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
