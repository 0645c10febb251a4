package dto

type UploadDocumentResponse struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	TotalChars int    `json:"total_chars"`
	Preview    string `json:"preview"`
}

type DocumentInfoDTO struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	TotalChars int    `json:"total_chars"`
	CreatedAt  int64  `json:"created_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentInfoDTO `json:"documents"`
	Total     int               `json:"total"`
	Stats     DocumentStatsDTO  `json:"stats"`
}

type DeleteDocumentResponse struct {
	DocumentId    string `json:"document_id"`
	ChunksRemoved int    `json:"chunks_removed"`
}

type ClearDocumentsResponse struct {
	DocumentsRemoved int `json:"documents_removed"`
}

type DocumentStatsDTO struct {
	TotalDocuments   int     `json:"total_documents"`
	TotalChunks      int     `json:"total_chunks"`
	TotalCharacters  int     `json:"total_characters"`
	AverageChunkSize int     `json:"average_chunk_size"`
	StorePath        string  `json:"store_path"`
}
