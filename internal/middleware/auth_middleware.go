package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "go-hrpay/internal/auth/errors"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/contextutil"
	"go-hrpay/internal/shared/response"
	"go-hrpay/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	UploadCallbackPath = "/api/v1/uploads/callback"
	identityKey        = "identity"
)

// TokenParser is satisfied by *token.Manager.
type TokenParser interface {
	Parse(tokenString, kind string) (domain.Identity, error)
}

type Outcome int

const (
	OutcomeAllow Outcome = iota
	OutcomeRedirect
	OutcomeUnauthorized
	OutcomeInvalidToken
)

type Decision struct {
	Outcome  Outcome
	Location string
	Err      *apperror.AppError
	Identity *domain.Identity
}

type Guard struct {
	tokens      TokenParser
	publicPaths map[string]struct{}
}

func NewGuard(tokens TokenParser) *Guard {
	return &Guard{
		tokens: tokens,
		publicPaths: map[string]struct{}{
			"/healthz":              {},
			"/api/v1/auth/login":    {},
			"/api/v1/auth/register": {},
			"/api/v1/auth/refresh":  {},
			"/api/v1/auth/logout":   {},
		},
	}
}

// Decide is the whole routing policy for one request. rawToken is empty
// when the client sent no credential.
func (g *Guard) Decide(path, rawToken string) Decision {
	if path == UploadCallbackPath {
		return Decision{Outcome: OutcomeAllow}
	}
	if _, ok := g.publicPaths[path]; ok {
		return Decision{Outcome: OutcomeAllow}
	}

	isAPI := hasPathPrefix(path, "/api")
	isDashboard := hasPathPrefix(path, domain.DashboardPrefix)

	if rawToken == "" {
		switch {
		case isAPI:
			return Decision{Outcome: OutcomeUnauthorized, Err: autherrors.ErrTokenNotFound}
		case isDashboard:
			return Decision{Outcome: OutcomeRedirect, Location: "/"}
		default:
			return Decision{Outcome: OutcomeAllow}
		}
	}

	id, err := g.tokens.Parse(rawToken, token.KindAccess)
	if err != nil {
		authErr := autherrors.ErrInvalidToken
		if errors.Is(err, token.ErrExpired) {
			authErr = autherrors.ErrTokenExpired
		}
		return Decision{Outcome: OutcomeInvalidToken, Err: authErr}
	}

	if isDashboard {
		home := id.Role.HomePrefix()
		if !hasPathPrefix(path, home) {
			return Decision{Outcome: OutcomeRedirect, Location: home}
		}
	}

	return Decision{Outcome: OutcomeAllow, Identity: &id}
}

// AuthGuard is installed on the engine so it sees pages and API calls alike.
func AuthGuard(tokens TokenParser) gin.HandlerFunc {
	g := NewGuard(tokens)
	return func(c *gin.Context) {
		d := g.Decide(c.Request.URL.Path, extractToken(c))

		switch d.Outcome {
		case OutcomeRedirect:
			c.Redirect(http.StatusTemporaryRedirect, d.Location)
			c.Abort()
		case OutcomeUnauthorized, OutcomeInvalidToken:
			response.Error(c, d.Err.HTTPStatus, d.Err.Code, d.Err.Message, nil)
			c.Abort()
		default:
			if d.Identity != nil {
				setIdentity(c, *d.Identity)
			}
			c.Next()
		}
	}
}

// RequireCompany rejects identities that are not attached to a tenant yet,
// e.g. a freshly registered user.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("company_id") == "" {
			response.Error(c, autherrors.ErrNoCompany.HTTPStatus, autherrors.ErrNoCompany.Code, autherrors.ErrNoCompany.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthGuard.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

// SetIdentity is exported for handler tests.
func SetIdentity(c *gin.Context, id domain.Identity) {
	setIdentity(c, id)
}

func setIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
	c.Set("employee_id", id.EmployeeID)
	c.Set("company_id", id.CompanyID)
	c.Set("role", id.Role.String())

	if c.Request != nil {
		ctx := contextutil.WithUserID(c.Request.Context(), id.UserID)
		ctx = contextutil.WithCompanyID(ctx, id.CompanyID)
		c.Request = c.Request.WithContext(ctx)
	}
}

func extractToken(c *gin.Context) string {
	if raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && raw != "" {
		return strings.TrimSpace(raw)
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// hasPathPrefix matches whole path segments: /dashboard/admin matches
// /dashboard/admin and /dashboard/admin/x but not /dashboard/administrator.
func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
