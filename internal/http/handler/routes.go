package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"argprep/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only parse and validate input; case rules live in the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.CaseService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/preprocess", PreviewFiles(svc))
	app.Get("/statistics", Statistics(svc))

	cases := app.Group("/cases")
	cases.Post("/", CreateCase(svc))
	cases.Get("/", ListCases(svc))
	cases.Get("/:id", GetCase(svc))
	cases.Post("/:id/upload/:side", UploadFiles(svc))
	cases.Post("/:id/argument/:side", SubmitArgument(svc))
	cases.Post("/:id/follow-up/:side", SubmitFollowUp(svc))
	cases.Get("/:id/validate", ValidateCase(svc))
	cases.Post("/:id/adjudicate", RequestAdjudication(svc))
	cases.Post("/:id/adjudicated", MarkAdjudicated(svc))
	cases.Get("/:id/files/:fileId/link", FileLink(svc))
}
