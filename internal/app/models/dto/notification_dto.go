package dto

import "time"

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateUserStatusRequest is the admin payload for activating or
// deactivating an account.
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// AdminUserResponse is one entry in the admin user listing
type AdminUserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUserListResponse is the paginated admin user listing
type AdminUserListResponse struct {
	Users          []AdminUserResponse `json:"users"`
	PaginationInfo PaginationInfo      `json:"pagination"`
}
