package knowledgeapi

import (
	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/knowledge"
	"github.com/interview-ace/ace/practice/knowledge/knowledgesrv"
	"github.com/gofiber/fiber/v2"
)

type KnowledgeHandlers struct {
	service *knowledgesrv.Service
}

func NewKnowledgeHandlers(service *knowledgesrv.Service) *KnowledgeHandlers {
	return &KnowledgeHandlers{service: service}
}

func (h *KnowledgeHandlers) RegisterRoutes(app *fiber.App, auth *authx.Service) {
	group := app.Group("/api/v1/knowledge", auth.Middleware())

	group.Post("/search", h.Search)
	group.Post("/documents", h.Ingest)
	group.Get("/documents/:id", h.GetDocument)
	group.Delete("/documents/:id", h.DeleteDocument)
}

// Search runs vector similarity search over the knowledge base
// POST /api/v1/knowledge/search
func (h *KnowledgeHandlers) Search(c *fiber.Ctx) error {
	var req knowledge.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.Search(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Ingest embeds and stores a document
// POST /api/v1/knowledge/documents
func (h *KnowledgeHandlers) Ingest(c *fiber.Ctx) error {
	var req knowledge.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.Ingest(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetDocument retrieves a stored document
// GET /api/v1/knowledge/documents/:id
func (h *KnowledgeHandlers) GetDocument(c *fiber.Ctx) error {
	documentID := kernel.DocumentID(c.Params("id"))
	if documentID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document ID",
		})
	}

	doc, err := h.service.GetDocument(c.Context(), documentID)
	if err != nil {
		return err
	}

	return c.JSON(doc)
}

// DeleteDocument removes a stored document
// DELETE /api/v1/knowledge/documents/:id
func (h *KnowledgeHandlers) DeleteDocument(c *fiber.Ctx) error {
	documentID := kernel.DocumentID(c.Params("id"))
	if documentID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document ID",
		})
	}

	if err := h.service.DeleteDocument(c.Context(), documentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
