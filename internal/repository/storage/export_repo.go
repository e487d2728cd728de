package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ExportRepository stores generated export files and hands out temporary links to them
type ExportRepository interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateExportPath creates a unique object path for an owner's export.
// Format: exports/<owner>/<yyyymmdd-hhmmss>_<uuid>.<ext>
func GenerateExportPath(ownerID uuid.UUID, kind string, at time.Time, ext string) string {
	filename := fmt.Sprintf("%s_%s.%s", at.UTC().Format("20060102-150405"), uuid.New().String(), ext)
	return path.Join("exports", ownerID.String(), kind, filename)
}
