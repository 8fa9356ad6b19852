package handler

import (
	"io"
	"net/http"

	"github.com/REDDITARUN/helix/internal/api/response"
	"github.com/REDDITARUN/helix/internal/rag"
	"github.com/rs/zerolog/log"
)

// DocumentHandler exposes the document ingestion endpoint
type DocumentHandler struct {
	service   *rag.Service
	maxUpload int64
}

// NewDocumentHandler creates a new document handler. maxSizeMB bounds the
// accepted upload size.
func NewDocumentHandler(service *rag.Service, maxSizeMB int64) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		maxUpload: maxSizeMB << 20,
	}
}

// Upload accepts a multipart file, extracts and chunks its text, and
// indexes the embeddings for later retrieval.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		response.BadRequest(w, "could not parse multipart form (file too large?)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing 'file' field in multipart form")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read uploaded file")
		response.InternalError(w, "failed to read uploaded file")
		return
	}

	result, err := h.service.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, result)
}
