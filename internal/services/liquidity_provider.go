package services

import "context"

// LiquidityProvider supplies the external 0-100 liquidity score for an item.
// The analytics engine treats the score as an opaque input; how it is
// computed (search volume, watcher counts, upstream APIs) is entirely the
// provider's business.
type LiquidityProvider interface {
	LiquidityScore(ctx context.Context, itemID string) (float64, error)
}

// StaticLiquidityProvider returns the same configured score for every item.
// It is the default until a real signal source is wired in.
type StaticLiquidityProvider struct {
	Score float64
}

// LiquidityScore implements LiquidityProvider
func (p StaticLiquidityProvider) LiquidityScore(_ context.Context, _ string) (float64, error) {
	return p.Score, nil
}
