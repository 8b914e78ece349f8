package voicesrv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/voice"
)

type Service struct {
	transcriber Transcriber
	converter   *FFmpegConverter
}

// NewService wires the voice service. converter may be nil when ffmpeg is
// absent; compressed uploads are then rejected instead of half-processed.
func NewService(transcriber Transcriber, converter *FFmpegConverter) *Service {
	return &Service{
		transcriber: transcriber,
		converter:   converter,
	}
}

// ConversionAvailable reports whether compressed audio can be handled.
func (s *Service) ConversionAvailable() bool {
	return s.converter != nil
}

// Transcribe converts the upload to WAV when needed and runs transcription.
func (s *Service) Transcribe(ctx context.Context, audioData []byte, filename string) (*voice.TranscribeResponse, error) {
	if len(audioData) == 0 {
		return nil, voice.ErrNoAudio()
	}
	if len(audioData) < voice.MinAudioBytes {
		return nil, voice.ErrAudioTooSmall().
			WithDetail("size_bytes", len(audioData)).
			WithDetail("min_bytes", voice.MinAudioBytes)
	}

	compressed := isCompressed(filename)
	if compressed && s.converter == nil {
		return nil, voice.ErrConverterMissing().
			WithDetail("file_name", filename)
	}

	inputPath, cleanupInput, err := writeTemp(audioData, filepath.Ext(filename))
	if err != nil {
		return nil, voice.ErrRegistry.NewWithCause(voice.CodeTranscriptionFailed, err).
			WithDetail("operation", "write_temp")
	}
	defer cleanupInput()

	audioPath := inputPath
	duration := 0.0

	if compressed {
		wavPath := inputPath + ".wav"
		if err := s.converter.ToWAV(ctx, inputPath, wavPath); err != nil {
			logx.Warnf("Audio conversion failed, transcribing original upload: %v", err)
		} else {
			defer os.Remove(wavPath)
			audioPath = wavPath
			if wav, err := os.ReadFile(wavPath); err == nil {
				duration = wavDuration(wav)
			}
		}
	} else {
		duration = wavDuration(audioData)
	}

	result, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, voice.ErrRegistry.NewWithCause(voice.CodeTranscriptionFailed, err).
			WithDetail("file_name", filename)
	}

	text := result.Text
	if text == "" {
		logx.Warnf("No speech detected in %s", filename)
		text = voice.NoSpeechPlaceholder
	}

	return &voice.TranscribeResponse{
		Success:  true,
		Text:     text,
		Language: result.Language,
		Duration: duration,
	}, nil
}

// isCompressed reports whether the upload needs ffmpeg before transcription.
func isCompressed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".webm", ".ogg", ".opus":
		return true
	}
	return false
}

func writeTemp(data []byte, ext string) (string, func(), error) {
	if ext == "" {
		ext = ".bin"
	}
	f, err := os.CreateTemp("", "voice-*"+ext)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}

	return path, func() { os.Remove(path) }, nil
}
