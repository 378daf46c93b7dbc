package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// Ensure the collection types implement the interfaces.
var (
	_ driven.CollectionStore = (*CollectionStore)(nil)
	_ driven.Collection      = (*Collection)(nil)
)

// CollectionStore is an in-memory implementation of driven.CollectionStore.
// Collections are ranked by keyword overlap.
type CollectionStore struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

// NewCollectionStore creates a new in-memory collection store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		collections: make(map[string]*Collection),
	}
}

// GetOrCreate opens the named collection, creating it if absent.
func (s *CollectionStore) GetOrCreate(_ context.Context, name string) (driven.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = NewCollection(name)
		s.collections[name] = c
	}
	return c, nil
}

// Delete removes the named collection.
func (s *CollectionStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%w: collection %s", domain.ErrNotFound, name)
	}
	delete(s.collections, name)
	return nil
}

// Close is a no-op.
func (s *CollectionStore) Close() error {
	return nil
}

// Collection is an in-memory document collection.
type Collection struct {
	name  string
	mu    sync.RWMutex
	order []string
	docs  map[string]domain.Document
}

// NewCollection creates an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{
		name: name,
		docs: make(map[string]domain.Document),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Add stores docs. The batch is rejected as a whole on any duplicate id.
func (c *Collection) Add(_ context.Context, docs []domain.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
		}
		if _, exists := c.docs[d.ID]; exists || seen[d.ID] {
			return fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, d.ID)
		}
		seen[d.ID] = true
	}

	for _, d := range docs {
		c.docs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return nil
}

// Query returns documents sharing a keyword with text, best first.
func (c *Collection) Query(_ context.Context, text string, n int) ([]domain.SearchResult, error) {
	if n <= 0 {
		n = domain.DefaultSearchLimit
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []domain.SearchResult
	for _, id := range c.order {
		doc := c.docs[id]
		score := domain.KeywordScore(text, doc.Title()+" "+doc.Text)
		if score > 0 {
			results = append(results, domain.SearchResult{Document: doc, Score: score})
		}
	}
	return domain.RankResults(results, n), nil
}

// Get returns documents by id, in the order requested.
func (c *Collection) Get(_ context.Context, ids ...string) ([]domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := c.docs[id]
		if !ok {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// List returns every document in insertion order.
func (c *Collection) List(_ context.Context) ([]domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	docs := make([]domain.Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, c.docs[id])
	}
	return docs, nil
}

// Count returns the number of documents.
func (c *Collection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order), nil
}
