package service

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rfxintake/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles authentication and the procurement role
// hierarchy: end_user < procurement_lead < approver < admin.
type AuthService struct {
	users     map[string]staticUser
	jwtSecret []byte
}

type staticUser struct {
	password string
	role     model.Role
}

// NewAuthService creates a new auth service. Accounts come from
// environment variables with development defaults.
func NewAuthService() *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	users := map[string]staticUser{
		envOr("END_USER_USERNAME", "user"):     {password: envOr("END_USER_PASSWORD", "password123"), role: model.RoleEndUser},
		envOr("PROCUREMENT_USERNAME", "lead"):  {password: envOr("PROCUREMENT_PASSWORD", "password123"), role: model.RoleProcurementLead},
		envOr("APPROVER_USERNAME", "approver"): {password: envOr("APPROVER_PASSWORD", "password123"), role: model.RoleApprover},
		envOr("ADMIN_USERNAME", "admin"):       {password: envOr("ADMIN_PASSWORD", "password123"), role: model.RoleAdmin},
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(secret),
	}
}

// Login validates credentials and returns a token carrying the user's
// role.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	u, ok := s.users[username]
	if !ok || u.password != password {
		return nil, ErrInvalidCredentials
	}

	userID := strings.ToLower(string(u.role)) + "_" + uuid.New().String()[:8]

	claims := &model.UserClaims{
		UserID: userID,
		Role:   u.role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		UserID: userID,
		Role:   u.role,
	}, nil
}

// ValidateToken validates a JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
