package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/service"
)

// listResponse is the pagination envelope for document listings.
type listResponse struct {
	Data        []model.DocumentResponse `json:"data"`
	CurrentPage int                      `json:"current_page"`
	LastPage    int                      `json:"last_page"`
	PerPage     int                      `json:"per_page"`
	Total       int                      `json:"total"`
}

// ListDocuments returns paginated documents with optional category and
// status filters.
func ListDocuments(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		perPage, err := strconv.Atoi(c.Query("per_page", "15"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PER_PAGE", "invalid per_page")
		}

		res, err := docSvc.List(c.UserContext(), service.ListParams{
			Page:     page,
			PerPage:  perPage,
			Category: c.Query("category"),
			Status:   c.Query("status"),
		})
		if err != nil {
			return respondServiceError(c, err, dev)
		}

		data := make([]model.DocumentResponse, 0, len(res.Items))
		for i := range res.Items {
			data = append(data, res.Items[i].Response())
		}
		return c.JSON(listResponse{
			Data:        data,
			CurrentPage: res.CurrentPage,
			LastPage:    res.LastPage,
			PerPage:     res.PerPage,
			Total:       res.Total,
		})
	}
}

// CreateDocument handles multipart document creation (fields: title,
// description?, category?, uploaded_by?, file).
func CreateDocument(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeValidationError(c, map[string]string{"file": "is required"})
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

		doc, err := docSvc.Create(c.UserContext(), service.CreateInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Category:    c.FormValue("category"),
			UploadedBy:  c.FormValue("uploaded_by"),
			FileName:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Content:     f,
		})
		if err != nil {
			return respondServiceError(c, err, dev)
		}
		return c.Status(fiber.StatusCreated).JSON(doc.Response())
	}
}

// GetDocument returns a single document by ID.
func GetDocument(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, dev)
		}
		return c.JSON(doc.Response())
	}
}

// updateRequest is the partial metadata update body; nil fields are not applied.
type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

// UpdateDocument applies a partial metadata update (title, description,
// category, status). File fields cannot be changed through this endpoint.
func UpdateDocument(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := docSvc.Update(c.UserContext(), id, service.UpdateInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Status:      req.Status,
		})
		if err != nil {
			return respondServiceError(c, err, dev)
		}
		return c.JSON(doc.Response())
	}
}

// DeleteDocument soft-deletes a document; remove_file=true also removes
// the stored blob first.
func DeleteDocument(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		removeFile := c.QueryBool("remove_file", false)

		if err := docSvc.Delete(c.UserContext(), id, removeFile); err != nil {
			return respondServiceError(c, err, dev)
		}
		return c.JSON(fiber.Map{"message": "document deleted successfully"})
	}
}

// DownloadDocument streams the blob with the stored MIME type, byte size
// and the original file name as the suggested download name.
func DownloadDocument(docSvc service.DocumentService, dev bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		dl, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, dev)
		}

		doc := dl.Document
		c.Set(fiber.HeaderContentType, doc.MimeType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
		// SendStream sets Content-Length from the stored size and closes
		// the reader when the response is written.
		return c.SendStream(dl.Content, int(doc.FileSize))
	}
}
