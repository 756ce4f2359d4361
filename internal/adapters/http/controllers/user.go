package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/service"
)

type UserController struct {
	userService     *service.UserService
	settingsService *service.SettingsService
}

type UserResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type SettingsResponse struct {
	LowStockThreshold  int    `json:"low_stock_threshold"`
	Currency           string `json:"currency"`
	EmailNotifications bool   `json:"email_notifications"`
	LowStockAlerts     bool   `json:"low_stock_alerts"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       string(user.ID),
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Status:   string(user.Status),
		JoinedAt: user.JoinedAt,
	}
}

func NewSettingsResponse(settings domain.Settings) SettingsResponse {
	return SettingsResponse{
		LowStockThreshold:  settings.LowStockThreshold,
		Currency:           settings.Currency,
		EmailNotifications: settings.EmailNotifications,
		LowStockAlerts:     settings.LowStockAlerts,
	}
}

func NewUserController(userService *service.UserService, settingsService *service.SettingsService) *UserController {
	return &UserController{userService: userService, settingsService: settingsService}
}

func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	response := make([]UserResponse, len(users))
	for i, user := range users {
		response[i] = NewUserResponse(user)
	}
	c.JSON(http.StatusOK, response)
}

// InviteUser godoc
// @Summary     Invite a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body     dto.InviteUserRequest true "Invitation"
// @Success     201     {object} UserResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/v1/users/invite [post]
func (uc *UserController) InviteUser(c *gin.Context) {
	var request dto.InviteUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	user, err := uc.userService.Invite(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUserResponse(user))
}

func (uc *UserController) GetSettings(c *gin.Context) {
	settings, err := uc.settingsService.Get(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(settings))
}

// UpdateSettings godoc
// @Summary     Update settings
// @Description The new low stock threshold applies to products added afterwards
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body     dto.UpdateSettingsRequest true "Fields to change"
// @Success     200     {object} SettingsResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Router      /api/v1/settings [put]
func (uc *UserController) UpdateSettings(c *gin.Context) {
	var request dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleBindError(c, err)
		return
	}
	settings, err := uc.settingsService.Update(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(settings))
}
