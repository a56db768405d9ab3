package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag；密码强度由领域服务校验
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150" example:"reader1"`
	Email     string `json:"email" binding:"required,email" example:"reader1@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
	FirstName string `json:"first_name" binding:"max=150" example:"Ivan"`
	LastName  string `json:"last_name" binding:"max=150" example:"Petrov"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"reader1"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
