// Package vector defines the interface to the external vector index used
// for document retrieval. The index is consumed, not built: upserts and
// nearest-neighbor queries only.
package vector

import "context"

// Vector is one embedded chunk with its metadata
type Vector struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

// Match is one nearest neighbor returned by a query
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// Index defines the interface to the vector index service
type Index interface {
	// Dimension returns the index's configured dimensionality. It must
	// equal the embedding model's output dimensionality; a mismatch is a
	// startup-time configuration error.
	Dimension(ctx context.Context) (int, error)

	// Upsert writes vectors, overwriting existing ids.
	Upsert(ctx context.Context, vectors []Vector) (int, error)

	// Query returns the topK nearest neighbors of the given vector,
	// including stored metadata when includeMetadata is set.
	Query(ctx context.Context, values []float32, topK int, includeMetadata bool) ([]Match, error)
}
