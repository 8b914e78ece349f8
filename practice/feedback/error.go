package feedback

import (
	"net/http"

	"github.com/interview-ace/ace/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("FEEDBACK")

var (
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid feedback request")
	CodeEvaluationFailed = ErrRegistry.Register("EVALUATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Answer evaluation failed")
	CodeNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Evaluation not found")
)

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrEvaluationFailed() *errx.Error {
	return ErrRegistry.New(CodeEvaluationFailed)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}
