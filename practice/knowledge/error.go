package knowledge

import (
	"net/http"

	"github.com/interview-ace/ace/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("KNOWLEDGE")

var (
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid knowledge request")
	CodeEmbedFailed    = ErrRegistry.Register("EMBED_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to embed text")
	CodeStoreFailed    = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store document")
	CodeNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Document not found")
)

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrEmbedFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbedFailed)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}
