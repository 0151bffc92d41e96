package token

import (
	"errors"
	"time"

	"go-hrpay/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"

	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Manager signs and verifies HS256 tokens carrying a domain.Identity.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// WithClock is used by tests to pin token timestamps.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	return &Manager{secret: m.secret, now: now}
}

func (m *Manager) Issue(id domain.Identity, kind string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"user_id":       id.UserID,
		"name":          id.Name,
		"email":         id.Email,
		"role":          id.Role.String(),
		"company_id":    id.CompanyID,
		"department_id": id.DepartmentID,
		"employee_id":   id.EmployeeID,
		"typ":           kind,
		"iat":           now.Unix(),
		"exp":           now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature, expiry and kind. Expired tokens yield ErrExpired,
// everything else that fails yields ErrInvalid.
func (m *Manager) Parse(tokenString, kind string) (domain.Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrExpired
		}
		return domain.Identity{}, ErrInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return domain.Identity{}, ErrInvalid
	}
	if typ, _ := claims["typ"].(string); typ != kind {
		return domain.Identity{}, ErrInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.Identity{}, ErrInvalid
	}
	roleStr, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Identity{}, ErrInvalid
	}

	return domain.Identity{
		UserID:       userID,
		Name:         stringClaim(claims, "name"),
		Email:        stringClaim(claims, "email"),
		Role:         role,
		CompanyID:    stringClaim(claims, "company_id"),
		DepartmentID: stringClaim(claims, "department_id"),
		EmployeeID:   stringClaim(claims, "employee_id"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
