package voicesrv

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/interview-ace/ace/pkg/errx"
	"github.com/interview-ace/ace/practice/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	result *voice.Result
	err    error
	path   string
}

func (s *stubTranscriber) Transcribe(_ context.Context, audioPath string) (*voice.Result, error) {
	s.path = audioPath
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// wavUpload pads a valid WAV header out past the minimum size check.
func wavUpload(byteRate, dataSize uint32) []byte {
	data := buildWAVHeader(byteRate, dataSize)
	return append(data, bytes.Repeat([]byte{0}, voice.MinAudioBytes)...)
}

func TestTranscribeWAVPassthrough(t *testing.T) {
	transcriber := &stubTranscriber{result: &voice.Result{Text: "tell me about yourself", Language: "en"}}
	svc := NewService(transcriber, nil)

	resp, err := svc.Transcribe(context.Background(), wavUpload(32000, 64000), "answer.wav")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "tell me about yourself", resp.Text)
	assert.Equal(t, "en", resp.Language)
	assert.InDelta(t, 2.0, resp.Duration, 0.001)
	assert.NotEmpty(t, transcriber.path)
}

func TestTranscribeRejectsEmptyUpload(t *testing.T) {
	svc := NewService(&stubTranscriber{}, nil)

	_, err := svc.Transcribe(context.Background(), nil, "answer.wav")
	require.Error(t, err)

	var appErr *errx.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, voice.CodeNoAudio, appErr.Code)
}

func TestTranscribeRejectsTinyUpload(t *testing.T) {
	svc := NewService(&stubTranscriber{}, nil)

	_, err := svc.Transcribe(context.Background(), make([]byte, voice.MinAudioBytes-1), "answer.wav")
	require.Error(t, err)

	var appErr *errx.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, voice.CodeAudioTooSmall, appErr.Code)
}

func TestTranscribeCompressedWithoutConverter(t *testing.T) {
	svc := NewService(&stubTranscriber{}, nil)

	_, err := svc.Transcribe(context.Background(), make([]byte, voice.MinAudioBytes), "answer.webm")
	require.Error(t, err)

	var appErr *errx.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, voice.CodeConverterMissing, appErr.Code)
}

func TestTranscribeEmptyTextBecomesPlaceholder(t *testing.T) {
	transcriber := &stubTranscriber{result: &voice.Result{Text: "", Language: "en"}}
	svc := NewService(transcriber, nil)

	resp, err := svc.Transcribe(context.Background(), wavUpload(32000, 16000), "silence.wav")
	require.NoError(t, err)

	assert.Equal(t, voice.NoSpeechPlaceholder, resp.Text)
}

func TestTranscribeWrapsTranscriberError(t *testing.T) {
	transcriber := &stubTranscriber{err: errors.New("upstream timeout")}
	svc := NewService(transcriber, nil)

	_, err := svc.Transcribe(context.Background(), wavUpload(32000, 16000), "answer.wav")
	require.Error(t, err)

	var appErr *errx.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, voice.CodeTranscriptionFailed, appErr.Code)
}

func TestIsCompressed(t *testing.T) {
	assert.True(t, isCompressed("recording.webm"))
	assert.True(t, isCompressed("RECORDING.OGG"))
	assert.True(t, isCompressed("clip.opus"))
	assert.False(t, isCompressed("answer.wav"))
	assert.False(t, isCompressed("answer.mp3"))
}
