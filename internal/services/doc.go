// Package services implements the business logic layer of CardPulse.
// It sits between the HTTP handlers and the pure analytics engine, owning
// the concerns the engine deliberately does not: input caps, liquidity
// score sourcing, batching, logging and timing.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. The analytics engine stays pure; side effects live here
//
// The liquidity score is an external 0-100 input to scenario
// classification. LiquidityProvider is the port for sourcing it; the
// default implementation returns a configured static score.
package services
