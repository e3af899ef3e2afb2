// Package services implements the driving port interfaces: search,
// ingestion, carbon scoring, publication harvesting and the grounded
// assistant. Services hold the business logic and orchestrate calls to
// driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
