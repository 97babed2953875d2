package salesdata

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/storage"
)

// Source is a place a sales history CSV can be read from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Load reads and parses the CSV behind src.
func Load(ctx context.Context, src Source) ([]domain.SalesRecord, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer rc.Close()

	records, err := ReadCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	return records, nil
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) String() string {
	return "file " + s.Path
}

// ObjectSource reads an object from S3-compatible storage.
type ObjectSource struct {
	Storage storage.ObjectStorage
	Key     string
}

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.Storage.OpenObject(ctx, s.Key)
}

func (s ObjectSource) String() string {
	return "object " + s.Key
}

// Downloader fetches a remote file by ID, as the Drive service does.
type Downloader interface {
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
}

// DriveSource streams a file from Google Drive.
type DriveSource struct {
	Drive  Downloader
	FileID string
}

func (s DriveSource) Open(ctx context.Context) (io.ReadCloser, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.Drive.DownloadFile(ctx, s.FileID, pw)
		pw.CloseWithError(err)
	}()
	return pr, nil
}

func (s DriveSource) String() string {
	return "drive file " + s.FileID
}
