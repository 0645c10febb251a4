package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/extract"
	"ai-studymate-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const previewLength = 500

// IDocumentService defines the document management service interface
type IDocumentService interface {
	Upload(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Delete(ctx context.Context, documentId string) (*dto.DeleteDocumentResponse, error)
	ClearAll(ctx context.Context) (*dto.ClearDocumentsResponse, error)
	Stats(ctx context.Context) (*dto.DocumentStatsDTO, error)
}

type documentService struct {
	store     *docstore.Store
	extractor *extract.Extractor
	cfg       config.DocumentConfig
	log       logger.ILogger
}

func NewDocumentService(store *docstore.Store, extractor *extract.Extractor, cfg config.DocumentConfig, log logger.ILogger) IDocumentService {
	return &documentService{
		store:     store,
		extractor: extractor,
		cfg:       cfg,
		log:       log,
	}
}

func (s *documentService) Upload(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error) {
	if len(content) > s.cfg.MaxUploadSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.cfg.MaxUploadSize))
	}

	text, err := s.extractor.Text(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < 10 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "document contains no extractable text")
	}

	pieces := utils.SplitText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	chunks := make([]docstore.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = docstore.Chunk{Content: piece, SourceName: filename}
	}

	documentId := uuid.New().String()
	if err := s.store.Ingest(documentId, chunks); err != nil {
		return nil, err
	}
	s.saveOriginal(documentId, filename, content)

	meta, _ := s.store.GetMetadata(documentId)
	s.log.Info("document", "Document ingested", map[string]interface{}{
		"document_id": documentId,
		"filename":    filename,
		"chunk_count": meta.ChunkCount,
	})

	preview := text
	if len([]rune(preview)) > previewLength {
		preview = string([]rune(preview)[:previewLength]) + "..."
	}

	return &dto.UploadDocumentResponse{
		DocumentId: documentId,
		Filename:   filename,
		ChunkCount: meta.ChunkCount,
		TotalChars: meta.TotalChars,
		Preview:    preview,
	}, nil
}

// saveOriginal keeps the raw upload next to the chunked store for later
// re-processing. Failure to archive is logged and does not fail the upload;
// the chunks are already persisted.
func (s *documentService) saveOriginal(documentId, filename string, content []byte) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.log.Warn("document", "Could not create upload dir", map[string]interface{}{"error": err.Error()})
		return
	}
	path := filepath.Join(s.cfg.UploadDir, documentId+filepath.Ext(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.log.Warn("document", "Could not archive original upload", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
	}
}

func (s *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	metas := s.store.List()

	docs := make([]dto.DocumentInfoDTO, 0, len(metas))
	for _, meta := range metas {
		docs = append(docs, dto.DocumentInfoDTO{
			DocumentId: meta.DocumentID,
			Filename:   meta.Filename,
			ChunkCount: meta.ChunkCount,
			TotalChars: meta.TotalChars,
			CreatedAt:  meta.CreatedAt.Unix(),
		})
	}
	stats, _ := s.Stats(ctx)
	return &dto.ListDocumentsResponse{Documents: docs, Total: len(docs), Stats: *stats}, nil
}

func (s *documentService) Delete(ctx context.Context, documentId string) (*dto.DeleteDocumentResponse, error) {
	removed, err := s.store.Delete(documentId)
	if err != nil {
		return nil, err
	}
	s.log.Info("document", "Document deleted", map[string]interface{}{
		"document_id":    documentId,
		"chunks_removed": removed,
	})
	return &dto.DeleteDocumentResponse{DocumentId: documentId, ChunksRemoved: removed}, nil
}

func (s *documentService) ClearAll(ctx context.Context) (*dto.ClearDocumentsResponse, error) {
	removed, err := s.store.ClearAll()
	if err != nil {
		return nil, err
	}
	return &dto.ClearDocumentsResponse{DocumentsRemoved: removed}, nil
}

func (s *documentService) Stats(ctx context.Context) (*dto.DocumentStatsDTO, error) {
	stats := s.store.GetStats()
	return &dto.DocumentStatsDTO{
		TotalDocuments:   stats.TotalDocuments,
		TotalChunks:      stats.TotalChunks,
		TotalCharacters:  stats.TotalCharacters,
		AverageChunkSize: stats.AverageChunkSize,
		StorePath:        stats.StorePath,
	}, nil
}
