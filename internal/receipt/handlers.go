package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosher55/receipt-ledger/internal/archive"
	"github.com/gosher55/receipt-ledger/internal/category"
	"github.com/gosher55/receipt-ledger/internal/ledger"
	"github.com/gosher55/receipt-ledger/internal/scanning"
)

// maxUploadSize caps receipt uploads at 50MB to handle high-resolution
// phone photos.
const maxUploadSize = int64(50 << 20)

// writeJSON writes a JSON response with CORS headers set
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes the error payload shape shared by all endpoints
func writeError(w http.ResponseWriter, status int, message, details string) {
	payload := map[string]string{"error": message}
	if details != "" {
		payload["details"] = details
	}
	writeJSON(w, status, payload)
}

// readUploadedFile pulls the "file" part out of a multipart request. On
// failure it writes the error response itself and reports ok=false.
func readUploadedFile(w http.ResponseWriter, r *http.Request) (data []byte, filename, contentType string, ok bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		msg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			msg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		writeError(w, http.StatusBadRequest, msg, "")
		return nil, "", "", false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided", "")
		return nil, "", "", false
	}
	defer f.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusBadRequest, "File is too large. Maximum size is 50MB.", "")
		return nil, "", "", false
	}

	data, err = io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading uploaded file", "error", err)
		writeError(w, http.StatusBadRequest, "Error reading file", "")
		return nil, "", "", false
	}

	contentType = header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		// Fall back to the extension; phone uploads often omit the type
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".pdf":
			contentType = "application/pdf"
		case ".png":
			contentType = "image/png"
		case ".gif":
			contentType = "image/gif"
		case ".heic":
			contentType = "image/heic"
		case ".heif":
			contentType = "image/heif"
		default:
			contentType = "image/jpeg"
		}
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	return data, header.Filename, contentType, true
}

// handleExtract runs extraction over an uploaded image and returns the
// candidate record for review. Nothing is persisted.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	data, filename, contentType, ok := readUploadedFile(w, r)
	if !ok {
		return
	}

	candidate, err := s.service.Extract(data, contentType)
	if err != nil {
		slog.Error("Extraction failed", "filename", filename, "error", err)
		if errors.Is(err, scanning.ErrUnparseable) {
			writeError(w, http.StatusUnprocessableEntity, "Could not parse model output", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "Extraction failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

// formAmount parses a numeric form value; empty means zero
func formAmount(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// handleSaveReceipt runs the save pipeline for a user-approved record
func (s *Server) handleSaveReceipt(w http.ResponseWriter, r *http.Request) {
	image, filename, contentType, ok := readUploadedFile(w, r)
	if !ok {
		return
	}

	rec := ReceiptRecord{
		Date:      r.FormValue("date"),
		ShopName:  r.FormValue("shopName"),
		Category:  r.FormValue("category"),
		Address:   r.FormValue("address"),
		ReceiptNo: r.FormValue("receiptNo"),
		Note:      r.FormValue("note"),
	}
	if rec.Category == "" {
		rec.Category = scanning.CategoryFallback
	}

	amounts := []struct {
		field string
		dst   *float64
	}{
		{"price", &rec.Price},
		{"discount", &rec.Discount},
		{"vat", &rec.VAT},
		{"wht", &rec.WHT},
		{"total", &rec.Total},
	}
	for _, a := range amounts {
		v, err := formAmount(r.FormValue(a.field))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s value", a.field), "")
			return
		}
		*a.dst = v
	}

	if _, err := s.service.Save(r.Context(), rec, image, filename, contentType); err != nil {
		slog.Error("Error saving receipt", "filename", filename, "error", err)
		if errors.Is(err, archive.ErrUnauthorized) || errors.Is(err, ledger.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "Failed to save receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// filterFromQuery builds a Filter from the optional list query parameters
func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Month:    q.Get("month"),
		Year:     q.Get("year"),
	}
}

// handleListReceipts returns the reconstructed ledger, newest first,
// optionally filtered
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.List(r.Context())
	if err != nil {
		slog.Error("Error listing receipts", "error", err)
		if errors.Is(err, ledger.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to list receipts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filterFromQuery(r).Apply(records))
}

// handleSummary returns the filtered aggregate plus the year options
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.List(r.Context())
	if err != nil {
		slog.Error("Error summarizing receipts", "error", err)
		if errors.Is(err, ledger.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to summarize receipts", err.Error())
		return
	}

	filtered := filterFromQuery(r).Apply(records)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(filtered),
		"total": Total(filtered),
		"years": Years(records),
	})
}

// handleImage proxies an archived image so the share link never needs to be
// exposed client-side
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing file ID", "")
		return
	}

	data, contentType, err := s.service.Image(r.Context(), id)
	if err != nil {
		slog.Error("Error fetching image", "id", id, "error", err)
		switch {
		case errors.Is(err, archive.ErrNotFound):
			writeError(w, http.StatusNotFound, "Image not found", "")
		case errors.Is(err, archive.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Unauthorized", "")
		default:
			writeError(w, http.StatusBadGateway, "Failed to fetch image", err.Error())
		}
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// handleListCategories returns all categories
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.registry.List()
	if err != nil {
		slog.Error("Error listing categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list categories", "")
		return
	}

	if categories == nil {
		categories = []category.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleAddCategory creates a category
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	added, err := s.registry.Add(req.Name, req.Color)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	writeJSON(w, http.StatusCreated, added)
}

// handleRemoveCategory deletes a category by id
func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Category ID required", "")
		return
	}

	if err := s.registry.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, "Category not found", "")
		return
	}

	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}
