package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ArchiveService snapshots generated reports into the report archive
type ArchiveService struct {
	archive domain.ReportArchive
	logger  zerolog.Logger
	now     func() time.Time
}

// NewArchiveService creates a new ArchiveService. A nil archive disables archiving.
func NewArchiveService(archive domain.ReportArchive, logger zerolog.Logger) *ArchiveService {
	return &ArchiveService{
		archive: archive,
		logger:  logger.With().Str("component", "archive_service").Logger(),
		now:     time.Now,
	}
}

// Enabled reports whether an archive backend is configured
func (s *ArchiveService) Enabled() bool {
	return s.archive != nil
}

// Archive stores report as JSON under reports/<kind>/<subjectID>/<date>-<uuid>.json
func (s *ArchiveService) Archive(ctx context.Context, kind string, subjectID int64, report any) (*domain.ArchivedReport, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveDisabled
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%d/%s-%s.json", kind, subjectID, s.now().UTC().Format("20060102T150405"), uuid.New())
	path, err := s.archive.Store(ctx, key, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info().
		Str("kind", kind).
		Int64("subject_id", subjectID).
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Archived report")

	return &domain.ArchivedReport{Kind: kind, SubjectID: subjectID, Path: path}, nil
}
