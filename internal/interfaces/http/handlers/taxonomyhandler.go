package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// TaxonomyHandler serves the category and tag reference data used by the
// report form.
type TaxonomyHandler struct {
	categoryRepo report.CategoryRepository
	tagRepo      report.TagRepository
	logger       logger.Interface
}

func NewTaxonomyHandler(
	categoryRepo report.CategoryRepository,
	tagRepo report.TagRepository,
	log logger.Interface,
) *TaxonomyHandler {
	return &TaxonomyHandler{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		logger:       log,
	}
}

// ListCategories handles GET /categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryToResponse(cat))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

// ListTags handles GET /tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.tagRepo.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tagsToResponse(tags))
}

// CreateTag handles POST /tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	tag := &report.Tag{Name: req.Name}
	if err := h.tagRepo.Create(c.Request.Context(), tag); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("tag created", "tag_id", tag.ID, "name", tag.Name)
	utils.CreatedResponse(c, TagResponse{ID: tag.ID, Name: tag.Name}, "Tag created successfully")
}
