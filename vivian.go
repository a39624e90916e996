// Package vivian fetches web resources, strips them down to their main
// textual content, and splits that text into size-bounded, word-aligned
// chunks for ingestion into an LLM context store.
//
// This package contains domain types, pure domain logic and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package vivian
