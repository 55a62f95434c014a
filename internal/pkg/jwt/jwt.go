package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimEmployeeID = "employee_id"
	ClaimType       = "type"

	TypeAccess = "access"
	TypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

type Service interface {
	GenerateAccessToken(employeeID string, email string) (token string, expiresAt int64, err error)
	GenerateSSEToken(employeeID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

// JWTService issues and verifies HS256 tokens. The identity provider owns
// login; tokens minted here serve development tooling and tests.
type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(employeeID string, email string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimEmployeeID: employeeID,
		"email":         email,
		ClaimType:       TypeAccess,
		"exp":           expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for event stream connections,
// which cannot carry an Authorization header.
func (j *JWTService) GenerateSSEToken(employeeID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimEmployeeID: employeeID,
		ClaimType:       TypeSSE,
		"exp":           expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the employee ID
func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return EmployeeID(token, TypeSSE)
}

// EmployeeID returns the caller claim of a token of the wanted type.
func EmployeeID(token jwt.Token, wantType string) (string, error) {
	if token == nil {
		return "", ErrInvalidToken
	}
	tokenType, ok := token.PrivateClaims()[ClaimType].(string)
	if !ok || tokenType != wantType {
		return "", ErrInvalidToken
	}
	employeeID, ok := token.PrivateClaims()[ClaimEmployeeID].(string)
	if !ok || employeeID == "" {
		return "", ErrInvalidToken
	}
	return employeeID, nil
}
