// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (key types, locked blobs, summaries) and contracts
// (interfaces) only.
package domain
