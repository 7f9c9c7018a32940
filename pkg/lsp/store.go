package lsp

import "sync"

// Document is an open text document.
type Document struct {
	URI     string
	Path    string
	Text    string
	Version int32
}

// Store holds the open documents. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// Set records the latest text of a document. Updates older than the stored
// version are ignored and reported as false.
func (s *Store) Set(doc Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.docs[doc.URI]; ok && doc.Version < prev.Version {
		return false
	}
	s.docs[doc.URI] = doc
	return true
}

// Get returns the document for uri.
func (s *Store) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Delete forgets a document.
func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
