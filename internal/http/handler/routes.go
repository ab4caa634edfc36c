package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"rfpapi/internal/http/middleware"
	"rfpapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, authSvc service.AuthService, rfpSvc service.RFPService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint checks DB connectivity; healthz is pure liveness.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Public auth endpoints
	app.Post("/register", RegisterUser(authSvc))
	app.Post("/login", LoginUser(authSvc))

	// Everything below requires a valid bearer token.
	authRequired := middleware.Auth(authSvc)
	app.Post("/upload-rfp", authRequired, UploadRFP(rfpSvc))
	app.Get("/rfps", authRequired, ListRFPs(rfpSvc))
	app.Get("/rfp/:id", authRequired, GetRFP(rfpSvc))
	app.Post("/generate-draft/:id", authRequired, GenerateDraft(rfpSvc))
	app.Put("/rfp/:id", authRequired, UpdateRFP(rfpSvc))
}
