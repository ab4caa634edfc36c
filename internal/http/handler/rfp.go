package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rfpapi/internal/http/middleware"
	"rfpapi/internal/service"
)

// UploadRFP accepts a multipart upload (fields: title, file) and stores the
// PDF for the authenticated user.
func UploadRFP(rfpSvc service.RFPService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
		}

		title := c.FormValue("title")
		if title == "" {
			return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		rfp, err := rfpSvc.Upload(c.UserContext(), user.ID, title, f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrInvalidFile) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILE", "Only PDF files are supported")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("RFP '%s' uploaded successfully.", rfp.Title),
		})
	}
}

// ListRFPs returns every RFP owned by the authenticated user.
func ListRFPs(rfpSvc service.RFPService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
		}

		items, err := rfpSvc.List(c.UserContext(), user.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// GetRFP returns one RFP by id. Rows owned by other users are reported as
// not found.
func GetRFP(rfpSvc service.RFPService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
		}

		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rfp, err := rfpSvc.Get(c.UserContext(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "RFP not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rfp)
	}
}

// GenerateDraft runs text extraction plus draft generation for one RFP and
// persists the result.
func GenerateDraft(rfpSvc service.RFPService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
		}

		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rfp, err := rfpSvc.GenerateDraft(c.UserContext(), user.ID, id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "RFP not found")
			case errors.Is(err, service.ErrGeneration):
				// The upstream failure reason is part of the contract here.
				return writeError(c, fiber.StatusInternalServerError, "GENERATION_FAILED", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		draft := ""
		if rfp.DraftText != nil {
			draft = *rfp.DraftText
		}
		return c.JSON(fiber.Map{
			"rfp_id": rfp.ID,
			"title":  rfp.Title,
			"draft":  draft,
		})
	}
}

// UpdateRFP overwrites the editable fields of one RFP (draft text, company
// name, document type, submission date).
func UpdateRFP(rfpSvc service.RFPService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
		}

		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.UpdateRFPInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		rfp, err := rfpSvc.Update(c.UserContext(), user.ID, id, in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidDate):
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid submission date")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "RFP not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{
			"message": "Draft updated successfully",
			"rfp_id":  rfp.ID,
		})
	}
}
