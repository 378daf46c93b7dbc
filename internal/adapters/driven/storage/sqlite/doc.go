// Package sqlite provides the persistent document collection store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Collections and their documents live in a single database file.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Ranking
//
// When an embedding service is configured, document embeddings are stored as
// little-endian float32 blobs and queries are ranked by cosine similarity.
// Vectors from a different embedding model are never compared; collections
// without usable vectors are ranked by keyword overlap.
//
// # Data Location
//
// By default, the database is stored at ~/.casedocs/data/collections.db
package sqlite
