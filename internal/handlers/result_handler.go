package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	sessionRepo repositories.SessionRepository
	screening   services.ScreeningService
	topN        int
}

func NewResultHandler(
	sessionRepo repositories.SessionRepository,
	screening services.ScreeningService,
	topN int,
) *ResultHandler {
	return &ResultHandler{
		sessionRepo: sessionRepo,
		screening:   screening,
		topN:        topN,
	}
}

// HandleGetSession handles GET /sessions/:id
func (h *ResultHandler) HandleGetSession(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return invalidSessionID(c)
	}

	session, err := h.sessionRepo.FindByID(id)
	if err != nil {
		return respondError(c, err, "Failed to load session")
	}

	return c.JSON(toSessionResponse(session))
}

// HandleGetReport handles GET /sessions/:id/report
func (h *ResultHandler) HandleGetReport(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return invalidSessionID(c)
	}

	report, err := h.screening.Report(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to generate report")
	}

	return c.JSON(services.NewReportResponse(id.String(), report, h.topN))
}

// HandleDownloadCSV handles GET /sessions/:id/report.csv
func (h *ResultHandler) HandleDownloadCSV(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return invalidSessionID(c)
	}

	report, err := h.screening.Report(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to generate report")
	}

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, report); err != nil {
		return respondError(c, err, "Failed to export CSV")
	}

	c.Attachment(services.CSVFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// HandleDownloadXLSX handles GET /sessions/:id/report.xlsx
func (h *ResultHandler) HandleDownloadXLSX(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return invalidSessionID(c)
	}

	report, err := h.screening.Report(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to generate report")
	}

	data, err := services.WriteXLSX(report)
	if err != nil {
		return respondError(c, err, "Failed to export XLSX")
	}

	c.Attachment(services.XLSXFilename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

// HandleDeleteSession handles DELETE /sessions/:id
func (h *ResultHandler) HandleDeleteSession(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return invalidSessionID(c)
	}

	if err := h.screening.Discard(id); err != nil {
		return respondError(c, err, "Failed to discard session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
