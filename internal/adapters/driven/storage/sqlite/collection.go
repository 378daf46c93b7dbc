package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// ==================== Collection Store ====================

// collectionStore implements driven.CollectionStore.
type collectionStore struct {
	store    *Store
	embedder driven.EmbeddingService
}

var _ driven.CollectionStore = (*collectionStore)(nil)

// CollectionStore returns a CollectionStore backed by this store.
// embedder may be nil, in which case collections rank by keyword overlap.
func (s *Store) CollectionStore(embedder driven.EmbeddingService) driven.CollectionStore {
	return &collectionStore{store: s, embedder: embedder}
}

// GetOrCreate opens the named collection, creating it if absent.
func (s *collectionStore) GetOrCreate(ctx context.Context, name string) (driven.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if _, err := s.store.db.ExecContext(ctx,
		"INSERT INTO collections (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name); err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}
	return &collection{store: s.store, name: name, embedder: s.embedder}, nil
}

// Delete removes the named collection and, by cascade, its documents.
func (s *collectionStore) Delete(ctx context.Context, name string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: collection %s", domain.ErrNotFound, name)
	}
	return nil
}

// Close closes the underlying store.
func (s *collectionStore) Close() error {
	return s.store.Close()
}

// ==================== Collection ====================

// collection implements driven.Collection over one row of collections.
type collection struct {
	store    *Store
	name     string
	embedder driven.EmbeddingService
}

var _ driven.Collection = (*collection)(nil)

// Name returns the collection name.
func (c *collection) Name() string {
	return c.name
}

// Add stores docs after the existing documents, embedding them when an
// embedding service is configured and matches the collection's model.
func (c *collection) Add(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate document id %s", domain.ErrAlreadyExists, d.ID)
		}
		seen[d.ID] = true
	}

	vectors, err := c.embed(ctx, docs)
	if err != nil {
		return err
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM documents WHERE collection = ?", c.name).Scan(&next); err != nil {
		return fmt.Errorf("reading position: %w", err)
	}

	for i, d := range docs {
		var exists int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM documents WHERE collection = ? AND id = ?", c.name, d.ID).Scan(&exists); err != nil {
			return fmt.Errorf("checking document %s: %w", d.ID, err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, d.ID)
		}

		metadataJSON, err := json.Marshal(d.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		var blob []byte
		if vectors != nil {
			blob = float32SliceToBytes(vectors[i])
		}

		next++
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, position, text, metadata, embedding)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.name, d.ID, next, d.Text, string(metadataJSON), blob); err != nil {
			return fmt.Errorf("inserting document %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// embed returns one vector per document, or nil when vectors should not be
// stored. An embedding failure stores the batch without vectors. The first
// embedded batch fixes the collection's model.
func (c *collection) embed(ctx context.Context, docs []domain.Document) ([][]float32, error) {
	if c.embedder == nil {
		return nil, nil
	}

	model, err := c.model(ctx)
	if err != nil {
		return nil, err
	}
	if model != "" && model != c.embedder.ModelName() {
		logger.Warn("collection %s was embedded with %s, not %s; storing without vectors",
			c.name, model, c.embedder.ModelName())
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("embedding %d documents for %s failed, storing without vectors: %v", len(docs), c.name, err)
		return nil, nil
	}
	if len(vectors) != len(docs) {
		logger.Warn("embedding for %s returned %d vectors for %d documents, storing without vectors",
			c.name, len(vectors), len(docs))
		return nil, nil
	}

	if model == "" {
		if _, err := c.store.db.ExecContext(ctx,
			"UPDATE collections SET embedding_model = ? WHERE name = ?", c.embedder.ModelName(), c.name); err != nil {
			return nil, fmt.Errorf("recording embedding model: %w", err)
		}
	}
	return vectors, nil
}

func (c *collection) model(ctx context.Context) (string, error) {
	var model string
	err := c.store.db.QueryRowContext(ctx,
		"SELECT embedding_model FROM collections WHERE name = ?", c.name).Scan(&model)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: collection %s", domain.ErrNotFound, c.name)
	}
	if err != nil {
		return "", fmt.Errorf("reading collection: %w", err)
	}
	return model, nil
}

// Query ranks documents against text. Vector ranking is used when the query
// can be embedded with the collection's model; otherwise, and for documents
// stored without a vector, only documents sharing a keyword with text are
// returned.
func (c *collection) Query(ctx context.Context, text string, n int) ([]domain.SearchResult, error) {
	if n <= 0 {
		n = domain.DefaultSearchLimit
	}

	queryVec, err := c.queryVector(ctx, text)
	if err != nil {
		return nil, err
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding FROM documents
		WHERE collection = ? ORDER BY position
	`, c.name)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var blob []byte
		doc, err := scanDocument(rows, &blob)
		if err != nil {
			return nil, err
		}

		if queryVec != nil && len(blob) > 0 {
			results = append(results, domain.SearchResult{
				Document: *doc,
				Score:    domain.CosineSimilarity(queryVec, bytesToFloat32Slice(blob)),
			})
			continue
		}

		score := domain.KeywordScore(text, doc.Title()+" "+doc.Text)
		if score > 0 {
			results = append(results, domain.SearchResult{Document: *doc, Score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return domain.RankResults(results, n), nil
}

// queryVector embeds text when vector ranking applies, else returns nil.
func (c *collection) queryVector(ctx context.Context, text string) ([]float32, error) {
	if c.embedder == nil {
		return nil, nil
	}
	model, err := c.model(ctx)
	if err != nil {
		return nil, err
	}
	if model != c.embedder.ModelName() {
		return nil, nil
	}
	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		logger.Warn("embedding query failed, falling back to keyword ranking: %v", err)
		return nil, nil
	}
	return vec, nil
}

// Get returns documents by id, in the order requested.
func (c *collection) Get(ctx context.Context, ids ...string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		row := c.store.db.QueryRowContext(ctx, `
			SELECT id, text, metadata, embedding FROM documents
			WHERE collection = ? AND id = ?
		`, c.name, id)

		var blob []byte
		doc, err := scanDocument(row, &blob)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// List returns every document in insertion order.
func (c *collection) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding FROM documents
		WHERE collection = ? ORDER BY position
	`, c.name)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var blob []byte
		doc, err := scanDocument(rows, &blob)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Count returns the number of documents in the collection.
func (c *collection) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection = ?", c.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDocument scans (id, text, metadata, embedding). sql.ErrNoRows is
// returned unwrapped.
func scanDocument(row scanner, embedding *[]byte) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string
	if err := row.Scan(&doc.ID, &doc.Text, &metadataJSON, embedding); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata: %w", err)
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]string{}
	}
	return &doc, nil
}
