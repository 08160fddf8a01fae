package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	ForcePasswordReset bool   `json:"force_password_reset"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type CreateLoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Password   string `json:"password" binding:"required"`
}

type CreateLoginResponse struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type AdminResetPasswordRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required"`
}
