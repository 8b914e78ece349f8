package questionapi

import (
	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/question"
	"github.com/interview-ace/ace/practice/question/questionsrv"
	"github.com/gofiber/fiber/v2"
)

type QuestionHandlers struct {
	service *questionsrv.Service
}

func NewQuestionHandlers(service *questionsrv.Service) *QuestionHandlers {
	return &QuestionHandlers{service: service}
}

func (h *QuestionHandlers) RegisterRoutes(app *fiber.App, auth *authx.Service) {
	questions := app.Group("/api/v1/questions", auth.Middleware())

	questions.Post("/generate", h.Generate)
	questions.Get("/sets/:id", h.GetSet)
	questions.Get("/sets", h.ListSets)
}

// Generate generates interview questions
// POST /api/v1/questions/generate
func (h *QuestionHandlers) Generate(c *fiber.Ctx) error {
	var req question.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.Generate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetSet retrieves a stored question set
// GET /api/v1/questions/sets/:id
func (h *QuestionHandlers) GetSet(c *fiber.Ctx) error {
	setID := kernel.QuestionSetID(c.Params("id"))
	if setID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid set ID",
		})
	}

	set, err := h.service.GetSet(c.Context(), setID)
	if err != nil {
		return err
	}

	return c.JSON(set.ToResponse())
}

// ListSets lists stored question sets
// GET /api/v1/questions/sets?page=1&page_size=20
func (h *QuestionHandlers) ListSets(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	sets, err := h.service.ListSets(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(sets)
}
