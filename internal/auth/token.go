package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	autherrors "go-workforce/internal/auth/errors"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

type Claims struct {
	EmployeeID  string `json:"employee_id"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Kind        string `json:"kind"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c TokenConfig) withDefaults() TokenConfig {
	if c.AccessTTL <= 0 {
		c.AccessTTL = 15 * time.Minute
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	return c
}

type tokenIssuer struct {
	cfg TokenConfig
}

func newTokenIssuer(cfg TokenConfig) *tokenIssuer {
	return &tokenIssuer{cfg: cfg.withDefaults()}
}

func (ti *tokenIssuer) issuePair(employeeID uuid.UUID, designation, department string) (access, refresh string, err error) {
	access, err = ti.issue(employeeID, designation, department, tokenKindAccess, ti.cfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = ti.issue(employeeID, designation, department, tokenKindRefresh, ti.cfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (ti *tokenIssuer) issue(employeeID uuid.UUID, designation, department, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		EmployeeID:  employeeID.String(),
		Designation: designation,
		Department:  department,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ti.cfg.Secret))
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
