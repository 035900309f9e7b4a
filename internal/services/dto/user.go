package dto

import "inviteme_backend/internal/models"

// UpdateUserRoleRequest - смена роли пользователя (админ)
type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required,is-user-role"`
}

// UserListResponse - страница пользователей (админ)
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// DashboardStats - агрегаты для админской панели
type DashboardStats struct {
	TotalUsers           int64   `json:"totalUsers"`
	TotalCustomers       int64   `json:"totalCustomers"`
	TotalInvitations     int64   `json:"totalInvitations"`
	PublishedInvitations int64   `json:"publishedInvitations"`
	TotalRevenue         float64 `json:"totalRevenue"`
}
