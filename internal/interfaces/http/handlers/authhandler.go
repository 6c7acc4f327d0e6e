package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nippo-inc/nippo/internal/application/user/usecases"
	"github.com/nippo-inc/nippo/internal/shared/config"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=150"`
	Password   string `json:"password" binding:"required,min=8,max=128"`
	EmployeeID string `json:"employee_id" binding:"required,max=20"`
	Department string `json:"department" binding:"omitempty,max=100"`
	Position   string `json:"position" binding:"omitempty,max=50"`
	Bio        string `json:"bio" binding:"omitempty,max=2000"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

type AuthHandler struct {
	registerUC   *usecases.RegisterUseCase
	loginUC      *usecases.LoginUseCase
	getProfileUC *usecases.GetProfileUseCase
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUseCase,
	loginUC *usecases.LoginUseCase,
	getProfileUC *usecases.GetProfileUseCase,
	cookieConfig config.CookieConfig,
	log logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		getProfileUC: getProfileUC,
		cookieConfig: cookieConfig,
		logger:       log,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	newUser, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Username:   req.Username,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		Position:   req.Position,
		Bio:        req.Bio,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, userToResponse(newUser), "Account created successfully")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetAccessTokenCookie(c, h.cookieConfig, result.AccessToken, int(result.ExpiresIn))

	utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", LoginResponse{
		User:        userToResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAccessTokenCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// GetCurrentUser handles GET /auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := c.Get("user_id")

	current, err := h.getProfileUC.Execute(c.Request.Context(), userID.(uint))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", userToResponse(current))
}
