package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/application/user/usecases"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

// UpdateProfileRequest uses pointers so an absent field keeps its current
// value while an empty string clears it.
type UpdateProfileRequest struct {
	Department *string `json:"department" binding:"omitempty,max=100"`
	Position   *string `json:"position" binding:"omitempty,max=50"`
	Bio        *string `json:"bio" binding:"omitempty,max=2000"`
}

type ProfileHandler struct {
	getProfileUC    *usecases.GetProfileUseCase
	updateProfileUC *usecases.UpdateProfileUseCase
	logger          logger.Interface
}

func NewProfileHandler(
	getProfileUC *usecases.GetProfileUseCase,
	updateProfileUC *usecases.UpdateProfileUseCase,
	log logger.Interface,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		logger:          log,
	}
}

// GetProfile handles GET /users/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	profile, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", userToResponse(profile))
}

// UpdateProfile handles PATCH /users/me
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	userID, _ := c.Get("user_id")

	updated, err := h.updateProfileUC.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		UserID:     userID.(uint),
		Department: req.Department,
		Position:   req.Position,
		Bio:        req.Bio,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", userToResponse(updated))
}
