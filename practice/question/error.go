package question

import (
	"net/http"

	"github.com/interview-ace/ace/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("QUESTION")

var (
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid generation request")
	CodeGenerationFailed = ErrRegistry.Register("GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Question generation failed")
	CodeInvalidResponse  = ErrRegistry.Register("INVALID_RESPONSE", errx.TypeInternal, http.StatusInternalServerError, "Generator returned malformed questions")
	CodeSetNotFound      = ErrRegistry.Register("SET_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Question set not found")
)

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeGenerationFailed)
}

func ErrInvalidResponse() *errx.Error {
	return ErrRegistry.New(CodeInvalidResponse)
}

func ErrSetNotFound() *errx.Error {
	return ErrRegistry.New(CodeSetNotFound)
}
