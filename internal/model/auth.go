package model

import "github.com/golang-jwt/jwt/v5"

// Role is the procurement workflow role carried in JWT claims.
type Role string

const (
	RoleEndUser         Role = "end_user"
	RoleProcurementLead Role = "procurement_lead"
	RoleApprover        Role = "approver"
	RoleAdmin           Role = "admin"
)

// Level returns the role's position in the permission hierarchy.
// Unknown roles map to end_user.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleApprover:
		return 2
	case RoleProcurementLead:
		return 1
	default:
		return 0
	}
}

// UserClaims are JWT claims for authenticated users.
type UserClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
