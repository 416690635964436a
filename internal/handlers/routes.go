package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the screening endpoints under router.
func RegisterRoutes(router fiber.Router, upload *UploadHandler, result *ResultHandler, rank *RankHandler) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	router.Post("/sessions", upload.HandleUpload)
	router.Get("/sessions/:id", result.HandleGetSession)
	router.Get("/sessions/:id/report", result.HandleGetReport)
	router.Get("/sessions/:id/report.csv", result.HandleDownloadCSV)
	router.Get("/sessions/:id/report.xlsx", result.HandleDownloadXLSX)
	router.Delete("/sessions/:id", result.HandleDeleteSession)

	router.Post("/rank", rank.HandleRank)
}
