package token_test

import (
	"testing"
	"time"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := token.NewManager("secret")
	id := domain.Identity{
		UserID:     "u-1",
		Name:       "Budi",
		Email:      "budi@example.com",
		Role:       domain.RoleCompanyAdmin,
		CompanyID:  "c-1",
		EmployeeID: "e-1",
	}

	raw, err := m.Issue(id, token.KindAccess, token.AccessTTL)
	assert.NoError(t, err)

	got, err := m.Parse(raw, token.KindAccess)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestManager_Parse(t *testing.T) {
	id := domain.Identity{UserID: "u-1", Role: domain.RoleEmployee}
	past := time.Now().Add(-time.Hour)

	t.Run("expired", func(t *testing.T) {
		m := token.NewManager("secret")
		raw, err := m.WithClock(func() time.Time { return past }).Issue(id, token.KindAccess, time.Minute)
		assert.NoError(t, err)

		_, err = m.Parse(raw, token.KindAccess)
		assert.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := token.NewManager("other").Issue(id, token.KindAccess, time.Minute)
		assert.NoError(t, err)

		_, err = token.NewManager("secret").Parse(raw, token.KindAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		m := token.NewManager("secret")
		raw, err := m.Issue(id, token.KindRefresh, time.Minute)
		assert.NoError(t, err)

		_, err = m.Parse(raw, token.KindAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("unknown role", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "u-1",
			"role":    "OWNER",
			"typ":     token.KindAccess,
			"exp":     time.Now().Add(time.Minute).Unix(),
		}).SignedString([]byte("secret"))
		assert.NoError(t, err)

		_, err = token.NewManager("secret").Parse(raw, token.KindAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := token.NewManager("secret").Parse("not-a-jwt", token.KindAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})
}
