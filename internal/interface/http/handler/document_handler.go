package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
)

type DocumentHandler struct {
	uploadUC *provider.UploadDocumentUseCase
	listUC   *provider.ListDocumentsUseCase
	maxBytes int64
}

func NewDocumentHandler(uploadUC *provider.UploadDocumentUseCase, listUC *provider.ListDocumentsUseCase, maxUploadMB int64) *DocumentHandler {
	return &DocumentHandler{uploadUC: uploadUC, listUC: listUC, maxBytes: maxUploadMB * 1024 * 1024}
}

// Upload принимает multipart поля "file" и "document_type".
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	documentType := c.PostForm("document_type")
	if documentType == "" {
		response.BadRequest(c, "document_type is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.uploadUC.Execute(c.Request.Context(), userID, documentType, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToDocumentResponse(doc))
}

func (h *DocumentHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	docs, err := h.listUC.Mine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentsResponse(docs))
}
