package voicesrv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/interview-ace/ace/practice/voice"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*voice.Result, error)
}

// OpenAITranscriber calls the hosted whisper model.
type OpenAITranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewOpenAITranscriber creates a transcriber. model may be empty to use
// whisper-1.
func NewOpenAITranscriber(apiKey, model string) *OpenAITranscriber {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAITranscriber{
		client:   &client,
		model:    model,
		language: "en",
	}
}

// Transcribe sends the audio file to the transcription API.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (*voice.Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	transcription, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    t.model,
		File:     f,
		Language: openai.String(t.language),
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription api error: %w", err)
	}

	return &voice.Result{
		Text:     strings.TrimSpace(transcription.Text),
		Language: t.language,
	}, nil
}
