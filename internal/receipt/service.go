package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gosher55/receipt-ledger/internal/archive"
	"github.com/gosher55/receipt-ledger/internal/ledger"
	"github.com/gosher55/receipt-ledger/internal/scanning"
)

// ErrNoImage is returned when a save is attempted without image bytes. A
// record with no archived image must never be written to the ledger.
var ErrNoImage = errors.New("no image provided")

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the receipt lifecycle: extraction of a candidate record from
// an image, the save pipeline, and read-side reconstruction.
type Service struct {
	archive    archive.Archive
	ledger     ledger.Ledger
	scanner    scanning.Scanner
	timeSource TimeSource
}

// NewService creates a new Service
func NewService(arc archive.Archive, led ledger.Ledger, scanner scanning.Scanner) *Service {
	return &Service{
		archive:    arc,
		ledger:     led,
		scanner:    scanner,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(arc archive.Archive, led ledger.Ledger, scanner scanning.Scanner, timeSrc TimeSource) *Service {
	return &Service{
		archive:    arc,
		ledger:     led,
		scanner:    scanner,
		timeSource: timeSrc,
	}
}

// Extract runs the extraction backend over an image and returns a candidate
// record for the user to review. The candidate is not persisted.
func (s *Service) Extract(data []byte, contentType string) (*scanning.ReceiptData, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}

	candidate, err := s.scanner.ScanReceipt(data, contentType)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	return candidate, nil
}

// Save persists a user-approved record: archive the image, then append the
// ledger row carrying the archive link. The two writes are strictly ordered
// and non-transactional. A failed archive stops the pipeline before any
// ledger write; a failed append leaves the archived image orphaned, which is
// the accepted inconsistency window. Save is not idempotent - retrying a
// failed append re-archives the image, so repeated retries cost duplicate
// archive objects, never duplicate-free silence.
func (s *Service) Save(ctx context.Context, rec ReceiptRecord, image []byte, filename, contentType string) (*ReceiptRecord, error) {
	if len(image) == 0 {
		return nil, ErrNoImage
	}

	name := fmt.Sprintf("Receipt_%d_%s", s.timeSource.Now().UnixMilli(), sanitizeFilename(filename))

	stored, err := s.archive.Store(ctx, image, name, contentType)
	if err != nil {
		return nil, fmt.Errorf("archiving image: %w", err)
	}

	rec.Link = stored.Link
	rec.ImageID = stored.ID

	if err := s.ledger.Append(ctx, rec.Row()); err != nil {
		slog.Warn("Ledger append failed, archived image is orphaned",
			"image_id", stored.ID,
			"error", err,
		)
		return nil, fmt.Errorf("recording to ledger: %w", err)
	}

	return &rec, nil
}

// List reads the whole ledger and reconstructs it as records, newest first
func (s *Service) List(ctx context.Context) ([]ReceiptRecord, error) {
	rows, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return ReconstructRecords(rows), nil
}

// Image fetches an archived receipt image by archive id
func (s *Service) Image(ctx context.Context, id string) ([]byte, string, error) {
	data, contentType, err := s.archive.Fetch(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("fetching image: %w", err)
	}
	return data, contentType, nil
}

var (
	filenameSpecials   = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	filenameWhitespace = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length; phone cameras generate long, messy names.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = filenameSpecials.ReplaceAllString(base, "")
	base = filenameWhitespace.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "receipt"
	}

	return base + ext
}
