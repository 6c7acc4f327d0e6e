package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/application/ranking"
	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

type RankingEntryResponse struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type DashboardResponse struct {
	TopAuthors  []RankingEntryResponse `json:"top_authors"`
	TopDistress []RankingEntryResponse `json:"top_distress"`
}

type RankingHandler struct {
	rankingService *ranking.Service
}

func NewRankingHandler(rankingService *ranking.Service) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetDashboard handles GET /rankings
func (h *RankingHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.rankingService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", DashboardResponse{
		TopAuthors:  rankingToResponse(dashboard.TopAuthors),
		TopDistress: rankingToResponse(dashboard.TopDistress),
	})
}

func rankingToResponse(rows []report.AuthorCount) []RankingEntryResponse {
	out := make([]RankingEntryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, RankingEntryResponse{
			UserID:     row.UserID,
			Username:   row.Username,
			Department: row.Department,
			Count:      row.Count,
		})
	}
	return out
}
