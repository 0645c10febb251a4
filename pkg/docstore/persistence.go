package docstore

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	documentsFile = "documents.gob"
	metadataFile  = "metadata.json"
)

// snapshot is the on-disk shape of the chunk artifact. The insertion order
// travels with the map so search iteration stays stable across restarts.
type snapshot struct {
	Documents map[string][]Chunk
	Order     []string
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// save rewrites both artifacts in full: the gob-encoded chunk map and the
// JSON metadata sidecar. Callers hold the write lock.
func (s *Store) save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Documents: s.docs, Order: s.order}); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, documentsFile), buf.Bytes(), 0o644); err != nil {
		return err
	}

	metaBytes, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, metadataFile), metaBytes, 0o644)
}

// load reads both artifacts if present. Any parse failure falls back to an
// empty store rather than failing startup; the corrupt files are replaced on
// the next mutation.
func (s *Store) load() {
	docsPath := filepath.Join(s.dir, documentsFile)
	if raw, err := os.ReadFile(docsPath); err == nil {
		var snap snapshot
		if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
			s.log.Warn("docstore", "persisted documents unreadable, starting empty", map[string]interface{}{
				"path":  docsPath,
				"error": err.Error(),
			})
		} else {
			s.docs = snap.Documents
			s.order = snap.Order
			if s.docs == nil {
				s.docs = make(map[string][]Chunk)
			}
		}
	}

	metaPath := filepath.Join(s.dir, metadataFile)
	if raw, err := os.ReadFile(metaPath); err == nil {
		meta := make(map[string]Metadata)
		if err := json.Unmarshal(raw, &meta); err != nil {
			s.log.Warn("docstore", "persisted metadata unreadable, starting empty", map[string]interface{}{
				"path":  metaPath,
				"error": err.Error(),
			})
		} else {
			s.meta = meta
		}
	}

	if len(s.docs) > 0 {
		s.log.Info("docstore", "documents loaded from disk", map[string]interface{}{
			"document_count": len(s.docs),
		})
	}
}
