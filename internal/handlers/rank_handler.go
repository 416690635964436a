package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type RankHandler struct {
	screening services.ScreeningService
	schema    *jsonschema.Schema
	topN      int
}

func NewRankHandler(screening services.ScreeningService, topN int) (*RankHandler, error) {
	schema, err := compileSchema("rank_request.json", rankRequestSchema)
	if err != nil {
		return nil, err
	}
	return &RankHandler{
		screening: screening,
		schema:    schema,
		topN:      topN,
	}, nil
}

// HandleRank handles POST /rank
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	if err := validateJSON(h.schema, c.Body()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var req models.RankRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	report, err := h.screening.RankTexts(req.JobDescription, req.Resumes)
	if err != nil {
		return respondError(c, err, "Failed to rank resumes")
	}

	return c.JSON(services.NewReportResponse("", report, h.topN))
}
