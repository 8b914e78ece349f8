package feedbackapi

import (
	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/feedback"
	"github.com/interview-ace/ace/practice/feedback/feedbacksrv"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandlers struct {
	service *feedbacksrv.Service
}

func NewFeedbackHandlers(service *feedbacksrv.Service) *FeedbackHandlers {
	return &FeedbackHandlers{service: service}
}

func (h *FeedbackHandlers) RegisterRoutes(app *fiber.App, auth *authx.Service) {
	group := app.Group("/api/v1/feedback", auth.Middleware())

	group.Post("/", h.Evaluate)
	group.Get("/:id", h.GetEvaluation)
	group.Get("/", h.ListEvaluations)
}

// Evaluate assesses an interview answer
// POST /api/v1/feedback
func (h *FeedbackHandlers) Evaluate(c *fiber.Ctx) error {
	var req feedback.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.Evaluate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetEvaluation retrieves a stored evaluation
// GET /api/v1/feedback/:id
func (h *FeedbackHandlers) GetEvaluation(c *fiber.Ctx) error {
	evaluationID := kernel.FeedbackID(c.Params("id"))
	if evaluationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid evaluation ID",
		})
	}

	evaluation, err := h.service.GetEvaluation(c.Context(), evaluationID)
	if err != nil {
		return err
	}

	return c.JSON(evaluation.ToResponse())
}

// ListEvaluations lists stored evaluations
// GET /api/v1/feedback?page=1&page_size=20
func (h *FeedbackHandlers) ListEvaluations(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	evaluations, err := h.service.ListEvaluations(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(evaluations)
}
