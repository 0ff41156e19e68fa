package host

import (
	"fmt"
	"sync"

	"github.com/dshills/genedit/internal/textdoc"
)

// Document is one entry in the mirror: the engine's copy of a document
// the host has open.
type Document struct {
	URI        string
	LanguageID string
	Version    int
	Text       string
}

// Store mirrors the host's open documents. The host streams didOpen,
// didChange, and didClose; the store applies each change batch so the
// engine always sees the same bytes the host does.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore creates an empty mirror.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Open adds a document to the mirror.
func (s *Store) Open(uri, languageID string, version int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; exists {
		return fmt.Errorf("%w: %s", ErrDocumentAlreadyOpen, uri)
	}
	s.docs[uri] = &Document{URI: uri, LanguageID: languageID, Version: version, Text: text}
	return nil
}

// Apply applies one change batch in order and bumps the version.
// Changes are interpreted against the text produced by the previous
// change in the same batch.
func (s *Store) Apply(uri string, version int, changes []textdoc.ContentChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[uri]
	if !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotOpen, uri)
	}
	if version <= doc.Version {
		return fmt.Errorf("%w: %s has %d, got %d", ErrStaleVersion, uri, doc.Version, version)
	}

	text := doc.Text
	for _, ch := range changes {
		text = textdoc.NewIndex(text).Splice(ch.Range, ch.Text)
	}
	doc.Text = text
	doc.Version = version
	return nil
}

// Close removes a document from the mirror.
func (s *Store) Close(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[uri]; !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotOpen, uri)
	}
	delete(s.docs, uri)
	return nil
}

// Get returns a snapshot of one document.
func (s *Store) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[uri]
	if !exists {
		return Document{}, false
	}
	return *doc, true
}

// Len returns the number of mirrored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
