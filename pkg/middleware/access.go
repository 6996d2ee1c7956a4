package middleware

import (
	"net/http"
	"net/url"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/data/repository"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthCookieName is the session cookie carrying the signed token.
const AuthCookieName = "auth_token"

type Outcome int

const (
	// Allowed: valid session, allowed role, verified account.
	Allowed Outcome = iota
	// Unauthenticated: no cookie, invalid/expired token, or unknown user.
	Unauthenticated
	// Forbidden: authenticated but the role is not in the allow-list.
	Forbidden
	// Unverified: authenticated but email ownership is unconfirmed.
	Unverified
)

// Decision is the single authorization outcome both the page and the API
// surfaces translate. Email is set for Unverified so the page path can
// pre-seed the verification form.
type Decision struct {
	Outcome Outcome
	UserID  uuid.UUID
	Role    entity.UserRole
	Email   string
}

// Access resolves session cookies to identities and enforces role
// allow-lists. Both call surfaces share Check; only the failure rendering
// differs.
type Access struct {
	tokens *token.Service
	users  repository.UserRepository
	log    *zap.Logger
}

func NewAccess(tokens *token.Service, users repository.UserRepository, log *zap.Logger) *Access {
	return &Access{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

// Check resolves the request's session cookie and applies the role
// allow-list and verification gate.
func (a *Access) Check(r *http.Request, allowedRoles ...entity.UserRole) Decision {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return Decision{Outcome: Unauthenticated}
	}

	identity, err := a.tokens.Verify(cookie.Value)
	if err != nil {
		a.log.Warn("Invalid session token", zap.Error(err))
		return Decision{Outcome: Unauthenticated}
	}

	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		a.log.Warn("Malformed user id in token", zap.String("user_id", identity.UserID))
		return Decision{Outcome: Unauthenticated}
	}

	// Role and verification state are re-checked against the user row, a
	// token outlives role changes otherwise.
	user, err := a.users.FindByID(r.Context(), userID)
	if err != nil {
		a.log.Error("Failed to load user for access check", zap.Error(err), zap.String("user_id", identity.UserID))
		return Decision{Outcome: Unauthenticated}
	}
	if user == nil {
		return Decision{Outcome: Unauthenticated}
	}

	allowed := false
	for _, role := range allowedRoles {
		if user.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		a.log.Warn("Role not allowed",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)),
			zap.String("path", r.URL.Path))
		return Decision{Outcome: Forbidden, UserID: user.ID, Role: user.Role, Email: user.Email}
	}

	if !user.IsVerified {
		return Decision{Outcome: Unverified, UserID: user.ID, Role: user.Role, Email: user.Email}
	}

	return Decision{Outcome: Allowed, UserID: user.ID, Role: user.Role, Email: user.Email}
}

// RequireAPI enforces the allow-list on JSON routes: 401 when the session
// is absent or invalid, 403 for wrong role or unverified account.
func (a *Access) RequireAPI(allowedRoles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := a.Check(r, allowedRoles...)

			switch decision.Outcome {
			case Allowed:
				ctx := utils.SetUserContext(r.Context(), decision.UserID, string(decision.Role))
				next.ServeHTTP(w, r.WithContext(ctx))
			case Unauthenticated:
				utils.ResponseUnauthorized(w, "Authentication required.")
			default:
				utils.ResponseForbidden(w, "Unauthorized access or unverified account.")
			}
		})
	}
}

// RequirePage enforces the same rules on server-rendered routes, but with
// redirects: /login when not allowed, /verify-email for unverified accounts.
func (a *Access) RequirePage(allowedRoles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := a.Check(r, allowedRoles...)

			switch decision.Outcome {
			case Allowed:
				ctx := utils.SetUserContext(r.Context(), decision.UserID, string(decision.Role))
				next.ServeHTTP(w, r.WithContext(ctx))
			case Unverified:
				http.Redirect(w, r, "/verify-email?email="+url.QueryEscape(decision.Email), http.StatusSeeOther)
			default:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			}
		})
	}
}

// SetAuthCookie installs the session cookie for the token's lifetime.
func SetAuthCookie(w http.ResponseWriter, tokenString string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie deletes the session cookie. Logout is purely client-side,
// an issued token stays valid until its natural expiry.
func ClearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
