package docstore

import "time"

// Chunk is one contiguous slice of a source document's extracted text,
// produced by the splitting step upstream of this store.
type Chunk struct {
	Content     string    `json:"content"`
	SourceName  string    `json:"source_name"`
	DocumentID  string    `json:"document_id"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	CreatedAt   time.Time `json:"created_at"`
}

// Metadata is the per-document summary kept alongside the chunk lists.
type Metadata struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	TotalChars int       `json:"total_chars"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchResult pairs a chunk with its relevance score. Unrestricted search
// produces normalized scores (matches divided by query token count) while
// document-restricted search produces raw occurrence counts, so scores from
// the two paths are not comparable.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Stats summarizes the whole store.
type Stats struct {
	TotalDocuments   int    `json:"total_documents"`
	TotalChunks      int    `json:"total_chunks"`
	TotalCharacters  int    `json:"total_characters"`
	AverageChunkSize int    `json:"average_chunk_size"`
	StorePath        string `json:"store_path"`
}
