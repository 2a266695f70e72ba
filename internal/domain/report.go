package domain

import "context"

// ReportArchive stores JSON snapshots of generated reports
type ReportArchive interface {
	// Store saves data under key and returns the object path it was written to
	Store(ctx context.Context, key string, data []byte) (string, error)
}

// ArchivedReport describes a stored snapshot
type ArchivedReport struct {
	Kind      string `json:"kind"`
	SubjectID int64  `json:"subjectId"`
	Path      string `json:"path"`
}
