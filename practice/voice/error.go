package voice

import (
	"net/http"

	"github.com/interview-ace/ace/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("VOICE")

var (
	CodeNoAudio             = ErrRegistry.Register("NO_AUDIO", errx.TypeValidation, http.StatusBadRequest, "No audio file provided")
	CodeAudioTooSmall       = ErrRegistry.Register("AUDIO_TOO_SMALL", errx.TypeValidation, http.StatusBadRequest, "Audio file is too small or incomplete")
	CodeConverterMissing    = ErrRegistry.Register("CONVERTER_MISSING", errx.TypeUnavailable, http.StatusServiceUnavailable, "ffmpeg is required to process compressed audio")
	CodeTranscriptionFailed = ErrRegistry.Register("TRANSCRIPTION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Transcription failed")
)

func ErrNoAudio() *errx.Error {
	return ErrRegistry.New(CodeNoAudio)
}

func ErrAudioTooSmall() *errx.Error {
	return ErrRegistry.New(CodeAudioTooSmall)
}

func ErrConverterMissing() *errx.Error {
	return ErrRegistry.New(CodeConverterMissing)
}

func ErrTranscriptionFailed() *errx.Error {
	return ErrRegistry.New(CodeTranscriptionFailed)
}
