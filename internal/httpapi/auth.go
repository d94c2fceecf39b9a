package httpapi

import (
    "context"
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"

    "github.com/pharmadesk/pharmapay/internal/policy"
)

// AuthConfig carries the identity-collaborator settings. With an empty
// Secret the API runs in dev mode and trusts an X-Role header instead.
type AuthConfig struct {
    Secret string
    Issuer string
}

// Identity is the caller as resolved by the identity collaborator.
type Identity struct {
    Role policy.Role
    Name string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// identityFrom returns the request identity set by requireIdentity.
func identityFrom(r *http.Request) Identity {
    id, _ := r.Context().Value(ctxKeyIdentity).(Identity)
    return id
}

// requireIdentity resolves the caller's role and display name and stores
// them in the request context. With a configured secret it enforces a
// Bearer HS256 JWT carrying "role" and "name" claims.
func (s *Server) requireIdentity() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            id, ok := s.resolveIdentity(r)
            if !ok {
                w.WriteHeader(http.StatusUnauthorized)
                return
            }
            if !id.Role.Valid() {
                writeErr(w, http.StatusForbidden, "unknown role", "forbidden")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyIdentity, id)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func (s *Server) resolveIdentity(r *http.Request) (Identity, bool) {
    if s.auth.Secret == "" {
        // Dev fallback: trust the X-Role header, defaulting to owner.
        role := policy.Role(strings.TrimSpace(r.Header.Get("X-Role")))
        if role == "" {
            role = policy.RoleOwner
        }
        return Identity{Role: role, Name: r.Header.Get("X-Name")}, true
    }

    h := r.Header.Get("Authorization")
    if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
        return Identity{}, false
    }
    raw := strings.TrimSpace(h[len("Bearer "):])

    opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
    if s.auth.Issuer != "" {
        opts = append(opts, jwt.WithIssuer(s.auth.Issuer))
    }
    token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
        return []byte(s.auth.Secret), nil
    }, opts...)
    if err != nil || !token.Valid {
        return Identity{}, false
    }
    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, false
    }
    role, _ := claims["role"].(string)
    name, _ := claims["name"].(string)
    return Identity{Role: policy.Role(role), Name: name}, true
}
