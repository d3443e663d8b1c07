package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/catalog"
)

type CatalogHandler struct {
	listUC *catalog.ListCategoriesUseCase
	getUC  *catalog.GetCategoryUseCase
}

func NewCatalogHandler(listUC *catalog.ListCategoriesUseCase, getUC *catalog.GetCategoryUseCase) *CatalogHandler {
	return &CatalogHandler{listUC: listUC, getUC: getUC}
}

func (h *CatalogHandler) List(c *gin.Context) {
	categories, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCategoriesResponse(categories))
}

func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	category, err := h.getUC.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCategoryResponse(category))
}
