package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/matching"
)

type MatchingHandler struct {
	matchUC *matching.MatchProvidersUseCase
}

func NewMatchingHandler(matchUC *matching.MatchProvidersUseCase) *MatchingHandler {
	return &MatchingHandler{matchUC: matchUC}
}

// Match обрабатывает POST /api/providers/match.
func (h *MatchingHandler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "category_id is required")
		return
	}

	categoryID, err := parseUUID(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "invalid category_id")
		return
	}
	preferred, err := dto.ParseOptionalTime(req.PreferredTime)
	if err != nil {
		response.BadRequest(c, "preferred_time must be RFC3339")
		return
	}

	matches, err := h.matchUC.Execute(c.Request.Context(), matching.MatchInput{
		CategoryID:    categoryID,
		PostalCode:    req.PostalCode,
		City:          req.City,
		PreferredTime: preferred,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToMatchResponse(matches))
}
