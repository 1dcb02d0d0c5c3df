// Package handlers provides HTTP request handlers for the optimade API.
//
// Handlers are organized by endpoint:
//
//   - entries.go: Entry listing and single-entry retrieval
//   - links.go: The links endpoint, local links plus the provider list
//   - info.go: Base info and versions
//   - health.go: Health and readiness checks
//
// Listing handlers follow a consistent pattern:
//
//  1. Validate query parameters
//  2. Check cache
//  3. Query the collection
//  4. Resolve included resources
//  5. Cache result
//  6. Return the document
//
// Handlers use dependency injection for testability and receive all
// dependencies through the Handlers struct.
package handlers

//go:generate gomarkdoc --output README.md .
