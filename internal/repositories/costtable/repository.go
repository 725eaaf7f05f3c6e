// Package costtable provides storage for the forge pricing tables: config
// rows (rarity and type multipliers) and cost rows (per-category prices).
package costtable

import (
	"context"

	"github.com/forgelight/forge-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=costtablemock github.com/forgelight/forge-api/internal/repositories/costtable Repository

// GetInput contains parameters for loading the pricing tables
type GetInput struct{}

// GetOutput contains both pricing tables. Row order is preserved from the
// last Put; lookup fallback depends on it.
type GetOutput struct {
	ConfigRows []entities.ConfigRow
	CostRows   []entities.CostRow
}

// PutInput replaces both pricing tables
type PutInput struct {
	ConfigRows []entities.ConfigRow
	CostRows   []entities.CostRow
}

// PutOutput contains the result of replacing the tables
type PutOutput struct{}

// Repository defines the interface for pricing table storage operations
type Repository interface {
	// Get loads both pricing tables
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put replaces both pricing tables
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}
