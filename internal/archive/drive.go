package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Scope is the Drive access the archive needs.
const Scope = drive.DriveScope

// Drive implements the Archive interface on Google Drive
type Drive struct {
	service  *drive.Service
	folderID string
}

// NewDrive creates a Drive archive. folderID is optional; when set, uploads
// land in that folder instead of the credential's root.
func NewDrive(ctx context.Context, folderID string, opts ...option.ClientOption) (*Drive, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return &Drive{
		service:  service,
		folderID: folderID,
	}, nil
}

// Store uploads the image to Drive and returns its file id and webViewLink
func (d *Drive) Store(ctx context.Context, data []byte, name string, contentType string) (*StoredFile, error) {
	file := &drive.File{Name: name}
	if d.folderID != "" {
		file.Parents = []string{d.folderID}
	}

	created, err := d.service.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("uploading to drive", err)
	}

	return &StoredFile{ID: created.Id, Link: created.WebViewLink}, nil
}

// Fetch downloads a stored image by id
func (d *Drive) Fetch(ctx context.Context, id string) ([]byte, string, error) {
	resp, err := d.service.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, "", classify("downloading from drive", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading drive download: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

// classify maps Drive API failures onto the archive error taxonomy while
// keeping the upstream message visible.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %s: %w", op, apiErr.Message, ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
