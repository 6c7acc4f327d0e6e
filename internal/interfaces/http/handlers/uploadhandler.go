package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/infrastructure/storage"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

type UploadHandler struct {
	store  storage.ImageStore
	logger logger.Interface
}

func NewUploadHandler(store storage.ImageStore, log logger.Interface) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: log,
	}
}

// UploadImage handles POST /uploads. The returned reference goes into the
// report's image field.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer file.Close()

	reference, err := h.store.Save(fileHeader.Filename, file)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"image": reference}, "Image uploaded successfully")
}
