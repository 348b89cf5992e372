package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/pdfs"
)

// Generated files stay retrievable for preview this long after an export.
const previewTTL = 10 * time.Minute

type previewEntry struct {
	result    *pdfs.ExportResult
	expiresAt time.Time
}

// exportService runs exports one at a time and keeps each result retrievable
// under a preview id. Download and preview read the same byte slice, so the
// previewed file and the downloaded file are byte-identical.
type exportService struct {
	exporter *pdfs.Exporter

	// Serializes exports. A second export request waits for the first
	// instead of racing it.
	exportMu sync.Mutex

	mu       sync.Mutex
	previews map[string]previewEntry
	now      func() time.Time
}

func newExportService(exporter *pdfs.Exporter) *exportService {
	return &exportService{
		exporter: exporter,
		previews: make(map[string]previewEntry),
		now:      time.Now,
	}
}

func (s *exportService) run(ctx context.Context, quote *models.QuoteData) (string, *pdfs.ExportResult, error) {
	s.exportMu.Lock()
	defer s.exportMu.Unlock()

	result, err := s.exporter.Export(ctx, quote)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.previews[id] = previewEntry{result: result, expiresAt: s.now().Add(previewTTL)}

	return id, result, nil
}

func (s *exportService) get(id string) (*pdfs.ExportResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.previews[id]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

func (s *exportService) pruneLocked() {
	now := s.now()
	for id, entry := range s.previews {
		if now.After(entry.expiresAt) {
			delete(s.previews, id)
		}
	}
}
