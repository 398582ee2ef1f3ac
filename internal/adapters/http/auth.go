package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

// RoleResolver maps an opaque credential carried by the Authorization
// header to a role. The credential is not a secret; the gate models the
// lookup, not cryptographic auth.
type RoleResolver interface {
	Resolve(credential string) (domain.Role, bool)
}

// StaticRoleResolver resolves credentials through a fixed table.
type StaticRoleResolver map[string]domain.Role

func (r StaticRoleResolver) Resolve(credential string) (domain.Role, bool) {
	role, ok := r[credential]
	return role, ok
}

// DefaultRoleResolver maps each known role name to itself.
func DefaultRoleResolver() StaticRoleResolver {
	table := make(StaticRoleResolver)
	for _, role := range domain.KnownRoles() {
		table[string(role)] = role
	}
	return table
}

type Gate struct {
	resolver RoleResolver
}

func NewGate(resolver RoleResolver) *Gate {
	return &Gate{resolver: resolver}
}

type roleContextKey struct{}

func roleFromContext(ctx context.Context) domain.Role {
	role, _ := ctx.Value(roleContextKey{}).(domain.Role)
	return role
}

// RequireRole wraps a handler with the authorization check. The credential
// travels as "Basic <credential>"; a missing or malformed header is 401,
// an unknown credential or a disallowed role is 403. The resolved role is
// placed in the request context for the handler.
func (g *Gate) RequireRole(next http.HandlerFunc, allowed ...domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		credential, ok := strings.CutPrefix(header, "Basic ")
		if !ok || strings.TrimSpace(credential) == "" {
			writeError(w, r, domain.NewError(domain.ErrUnauthorized,
				"Unauthorized: missing or invalid Authorization header"))
			return
		}

		role, known := g.resolver.Resolve(strings.TrimSpace(credential))
		if !known {
			writeError(w, r, domain.NewError(domain.ErrForbidden, "Forbidden: unknown role"))
			return
		}
		permitted := false
		for _, candidate := range allowed {
			if candidate == role {
				permitted = true
				break
			}
		}
		if !permitted {
			writeError(w, r, domain.NewError(domain.ErrForbidden, "Forbidden: insufficient permissions"))
			return
		}

		ctx := context.WithValue(r.Context(), roleContextKey{}, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
