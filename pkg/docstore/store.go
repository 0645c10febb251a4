package docstore

import (
	"fmt"
	"sync"
	"time"

	"ai-studymate-be/internal/pkg/logger"
)

// Store holds chunked document content keyed by document id and answers
// keyword relevance queries against it. Every mutation is persisted to disk
// in full before it is acknowledged; a failed persist rolls the in-memory
// state back so the store never diverges from its on-disk image.
type Store struct {
	mu  sync.RWMutex
	dir string
	log logger.ILogger

	docs  map[string][]Chunk
	meta  map[string]Metadata
	order []string // document ids in insertion order, for stable iteration
}

// New creates a Store rooted at dir and loads any previously persisted
// state. Corrupt or unreadable state is logged and treated as an empty
// store so the service can still start.
func New(dir string, log logger.ILogger) (*Store, error) {
	s := &Store{
		dir:  dir,
		log:  log,
		docs: make(map[string][]Chunk),
		meta: make(map[string]Metadata),
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	s.load()
	return s, nil
}

// Ingest stores chunks as a new document record under documentID. Chunk
// positions are stamped here so callers only need to supply content and
// source name. The whole record appears atomically or not at all.
func (s *Store) Ingest(documentID string, chunks []Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("%w: no chunks for document %s", ErrEmptyInput, documentID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	totalChars := 0
	stamped := make([]Chunk, len(chunks))
	for i, c := range chunks {
		c.DocumentID = documentID
		c.ChunkIndex = i
		c.TotalChunks = len(chunks)
		c.CreatedAt = now
		stamped[i] = c
		totalChars += len(c.Content)
	}

	prevChunks, existed := s.docs[documentID]
	prevMeta := s.meta[documentID]

	s.docs[documentID] = stamped
	s.meta[documentID] = Metadata{
		DocumentID: documentID,
		Filename:   stamped[0].SourceName,
		ChunkCount: len(stamped),
		TotalChars: totalChars,
		CreatedAt:  now,
	}
	if !existed {
		s.order = append(s.order, documentID)
	}

	if err := s.save(); err != nil {
		// Roll back so memory matches the last persisted image.
		if existed {
			s.docs[documentID] = prevChunks
			s.meta[documentID] = prevMeta
		} else {
			delete(s.docs, documentID)
			delete(s.meta, documentID)
			s.order = s.order[:len(s.order)-1]
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info("docstore", "document ingested", map[string]interface{}{
		"document_id": documentID,
		"chunk_count": len(stamped),
		"total_chars": totalChars,
	})
	return nil
}

// GetByID returns the ordered chunk list for a document. An unknown id
// yields an empty list, not an error.
func (s *Store) GetByID(documentID string) []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks, ok := s.docs[documentID]
	if !ok {
		return []Chunk{}
	}
	out := make([]Chunk, len(chunks))
	copy(out, chunks)
	return out
}

// GetMetadata returns the summary record for a document.
func (s *Store) GetMetadata(documentID string) (Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meta[documentID]
	return m, ok
}

// Delete removes a document record and persists the change.
func (s *Store) Delete(documentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks, ok := s.docs[documentID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, documentID)
	}

	prevMeta := s.meta[documentID]
	prevOrder := s.order

	delete(s.docs, documentID)
	delete(s.meta, documentID)
	s.order = removeID(s.order, documentID)

	if err := s.save(); err != nil {
		s.docs[documentID] = chunks
		s.meta[documentID] = prevMeta
		s.order = prevOrder
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return len(chunks), nil
}

// ClearAll empties the store and persists, returning the number of chunks
// removed.
func (s *Store) ClearAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, chunks := range s.docs {
		removed += len(chunks)
	}

	prevDocs, prevMeta, prevOrder := s.docs, s.meta, s.order
	s.docs = make(map[string][]Chunk)
	s.meta = make(map[string]Metadata)
	s.order = nil

	if err := s.save(); err != nil {
		s.docs, s.meta, s.order = prevDocs, prevMeta, prevOrder
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return removed, nil
}

// List returns the summary metadata of every stored document in insertion
// order.
func (s *Store) List() []Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Metadata, 0, len(s.order))
	for _, id := range s.order {
		if m, ok := s.meta[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// GetStats reports document, chunk and character totals plus the average
// chunk size (integer division, zero when the store is empty).
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalDocuments: len(s.docs),
		StorePath:      s.dir,
	}
	for _, chunks := range s.docs {
		st.TotalChunks += len(chunks)
		for _, c := range chunks {
			st.TotalCharacters += len(c.Content)
		}
	}
	if st.TotalChunks > 0 {
		st.AverageChunkSize = st.TotalCharacters / st.TotalChunks
	}
	return st
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
