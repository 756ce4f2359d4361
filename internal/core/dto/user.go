package dto

type InviteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user"`
}

type UpdateSettingsRequest struct {
	LowStockThreshold  *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Currency           *string `json:"currency" validate:"omitempty,currency"`
	EmailNotifications *bool   `json:"email_notifications"`
	LowStockAlerts     *bool   `json:"low_stock_alerts"`
}
