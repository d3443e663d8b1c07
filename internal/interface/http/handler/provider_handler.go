package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
)

type ProviderHandler struct {
	getUC    *provider.GetProfileUseCase
	saveUC   *provider.SaveProfileUseCase
	uploadUC *provider.UploadPhotoUseCase
	maxBytes int64
}

func NewProviderHandler(getUC *provider.GetProfileUseCase, saveUC *provider.SaveProfileUseCase, uploadUC *provider.UploadPhotoUseCase, maxUploadMB int64) *ProviderHandler {
	return &ProviderHandler{getUC: getUC, saveUC: saveUC, uploadUC: uploadUC, maxBytes: maxUploadMB * 1024 * 1024}
}

func (h *ProviderHandler) GetByID(c *gin.Context) {
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	profile, err := h.getUC.ByID(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(profile, isAdmin(c)))
}

func (h *ProviderHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.getUC.ByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(profile, true))
}

func (h *ProviderHandler) SaveMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	profile, err := h.saveUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(profile, true))
}

// UploadPhoto принимает multipart поле "photo".
func (h *ProviderHandler) UploadPhoto(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Запас на multipart заголовки поверх лимита файла.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	header, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	profile, err := h.uploadUC.Execute(c.Request.Context(), userID, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(profile, true))
}
