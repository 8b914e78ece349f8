package voiceapi

import (
	"io"

	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/practice/voice"
	"github.com/interview-ace/ace/practice/voice/voicesrv"
	"github.com/gofiber/fiber/v2"
)

type VoiceHandlers struct {
	service *voicesrv.Service
}

func NewVoiceHandlers(service *voicesrv.Service) *VoiceHandlers {
	return &VoiceHandlers{service: service}
}

func (h *VoiceHandlers) RegisterRoutes(app *fiber.App, auth *authx.Service) {
	group := app.Group("/api/v1/voice", auth.Middleware())

	group.Post("/transcribe", h.Transcribe)
}

// Transcribe transcribes an uploaded audio recording
// POST /api/v1/voice/transcribe
func (h *VoiceHandlers) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return voice.ErrNoAudio()
	}

	audio, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer audio.Close()

	data, err := io.ReadAll(audio)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	response, err := h.service.Transcribe(c.Context(), data, file.Filename)
	if err != nil {
		return err
	}

	return c.JSON(response)
}
