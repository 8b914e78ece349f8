package resume

import (
	"net/http"

	"github.com/interview-ace/ace/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Parse Operations
var (
	CodeResultNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Parse result not found")
	CodeInvalidData       = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid resume data")
	CodeParseFailed       = ErrRegistry.Register("PARSE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to parse resume")
	CodeFallbackFailed    = ErrRegistry.Register("FALLBACK_FAILED", errx.TypeInternal, http.StatusInternalServerError, "LLM fallback parse failed")
	CodeFileReadFailed    = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeInvalidFileFormat = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Invalid file format")
	CodeEmptyText         = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Resume contains no extractable text")
)

// Error codes - Job/Queue Operations
var (
	CodeJobNotFound        = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Processing job not found")
	CodeJobFailed          = ErrRegistry.Register("JOB_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job processing failed")
	CodeJobMaxRetries      = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Job exceeded maximum retry attempts")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue job")
	CodeJobCreationFailed  = ErrRegistry.Register("JOB_CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create job record")
	CodeJobUpdateFailed    = ErrRegistry.Register("JOB_UPDATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to update job status")
)

// Helper functions - Parse Operations
func ErrResultNotFound() *errx.Error {
	return ErrRegistry.New(CodeResultNotFound)
}

func ErrInvalidData() *errx.Error {
	return ErrRegistry.New(CodeInvalidData)
}

func ErrParseFailed() *errx.Error {
	return ErrRegistry.New(CodeParseFailed)
}

func ErrFallbackFailed() *errx.Error {
	return ErrRegistry.New(CodeFallbackFailed)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrEmptyText() *errx.Error {
	return ErrRegistry.New(CodeEmptyText)
}

// Helper functions - Job/Queue Operations
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobFailed() *errx.Error {
	return ErrRegistry.New(CodeJobFailed)
}

func ErrJobMaxRetries() *errx.Error {
	return ErrRegistry.New(CodeJobMaxRetries)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrJobUpdateFailed() *errx.Error {
	return ErrRegistry.New(CodeJobUpdateFailed)
}
