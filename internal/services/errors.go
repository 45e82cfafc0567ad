package services

import "errors"

// Analysis service errors
var (
	ErrSampleTooLarge   = errors.New("listing sample exceeds configured cap")
	ErrInvalidLiquidity = errors.New("liquidity score must be in [0,100]")
	ErrNoRequest        = errors.New("analysis request is nil")
)
