// Package http contains the HTTP transport layer for CardPulse.
// Handlers are thin: they decode and validate request DTOs, call the
// service layer, and render results with chi/render. All business logic
// lives in internal/services and internal/analytics.
package http
