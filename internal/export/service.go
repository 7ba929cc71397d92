package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/filing"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type Reports interface {
	Build(ctx context.Context, batchID uuid.UUID) (*filing.Report, error)
}

type Service struct {
	reports Reports
}

func NewService(reports Reports) *Service {
	return &Service{reports: reports}
}

// Export renders the report of a stored batch.
func (s *Service) Export(ctx context.Context, batchID uuid.UUID, format Format, w io.Writer) error {
	r, err := s.reports.Build(ctx, batchID)
	if err != nil {
		return err
	}

	return Write(w, format, r)
}

// ExportFile renders the report into dir and returns the file path.
func (s *Service) ExportFile(ctx context.Context, batchID uuid.UUID, format Format, dir string) (string, error) {
	r, err := s.reports.Build(ctx, batchID)
	if err != nil {
		return "", err
	}

	data, err := Render(format, r)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, Filename(batchID, format))

	if err := WriteFile(path, data); err != nil {
		return "", err
	}

	slog.Info("exported report", "batch", batchID, "format", format, "path", path)

	return path, nil
}

// WriteFile writes rendered output to path and removes the file again
// when writing fails.
func WriteFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			slog.Warn("failed to remove partial export", "path", path, "error", rmErr)
		}

		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func Filename(batchID uuid.UUID, format Format) string {
	return fmt.Sprintf("anlage-euer-%s.%s", batchID.String()[:8], format.Extension())
}
