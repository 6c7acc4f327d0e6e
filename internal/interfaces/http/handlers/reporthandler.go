package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/application/report/usecases"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

type CreateReportRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	TagIDs     []uint  `json:"tag_ids"`
	Title      string  `json:"title" binding:"required,max=200"`
	Body       string  `json:"body" binding:"required"`
	Image      *string `json:"image" binding:"omitempty,max=500"`
	Condition  string  `json:"condition" binding:"omitempty,oneof=excellent good normal tired bad"`
}

type UpdateReportRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	TagIDs     []uint  `json:"tag_ids"`
	Title      string  `json:"title" binding:"required,max=200"`
	Body       string  `json:"body" binding:"required"`
	Image      *string `json:"image" binding:"omitempty,max=500"`
	Condition  string  `json:"condition" binding:"required,oneof=excellent good normal tired bad"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type ReportHandler struct {
	createReportUC *usecases.CreateReportUseCase
	getReportUC    *usecases.GetReportUseCase
	listReportsUC  *usecases.ListReportsUseCase
	updateReportUC *usecases.UpdateReportUseCase
	deleteReportUC *usecases.DeleteReportUseCase
	addCommentUC   *usecases.AddCommentUseCase
	logger         logger.Interface
}

func NewReportHandler(
	createReportUC *usecases.CreateReportUseCase,
	getReportUC *usecases.GetReportUseCase,
	listReportsUC *usecases.ListReportsUseCase,
	updateReportUC *usecases.UpdateReportUseCase,
	deleteReportUC *usecases.DeleteReportUseCase,
	addCommentUC *usecases.AddCommentUseCase,
	log logger.Interface,
) *ReportHandler {
	return &ReportHandler{
		createReportUC: createReportUC,
		getReportUC:    getReportUC,
		listReportsUC:  listReportsUC,
		updateReportUC: updateReportUC,
		deleteReportUC: deleteReportUC,
		addCommentUC:   addCommentUC,
		logger:         log,
	}
}

// CreateReport handles POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create report", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	userID, _ := c.Get("user_id")

	result, err := h.createReportUC.Execute(c.Request.Context(), usecases.CreateReportCommand{
		AuthorID:   userID.(uint),
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
		Title:      req.Title,
		Body:       req.Body,
		Image:      req.Image,
		Condition:  req.Condition,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, reportToResponse(result), "Report created successfully")
}

// GetReport handles GET /reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := utils.ParseIDParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getReportUC.Execute(c.Request.Context(), reportID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detailToResponse(result))
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	query := usecases.ListReportsQuery{
		Query:        c.Query("q"),
		CategorySlug: c.Query("category"),
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil || categoryID == 0 {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("Invalid category_id"))
			return
		}
		query.CategoryID = uint(categoryID)
	}

	summaries, err := h.listReportsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summariesToResponse(summaries))
}

// UpdateReport handles PUT /reports/:id
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	reportID, err := utils.ParseIDParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update report", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	userID, _ := c.Get("user_id")

	result, err := h.updateReportUC.Execute(c.Request.Context(), usecases.UpdateReportCommand{
		ReportID:   reportID,
		ActorID:    userID.(uint),
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
		Title:      req.Title,
		Body:       req.Body,
		Image:      req.Image,
		Condition:  req.Condition,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report updated successfully", reportToResponse(result))
}

// DeleteReport handles DELETE /reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, err := utils.ParseIDParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := c.Get("user_id")

	if err := h.deleteReportUC.Execute(c.Request.Context(), usecases.DeleteReportCommand{
		ReportID: reportID,
		ActorID:  userID.(uint),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AddComment handles POST /reports/:id/comments
func (h *ReportHandler) AddComment(c *gin.Context) {
	reportID, err := utils.ParseIDParam(c, "id", "report")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	userID, _ := c.Get("user_id")

	comment, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		ReportID: reportID,
		AuthorID: userID.(uint),
		Text:     req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"id":         comment.ID(),
		"report_id":  comment.ReportID(),
		"author_id":  comment.AuthorID(),
		"text":       comment.Text(),
		"created_at": comment.CreatedAt(),
	}, "Comment added successfully")
}
