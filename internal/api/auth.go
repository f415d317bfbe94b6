package loyalty

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid token")

type identityKey struct{}

// Токен провайдера идентификации
type IdentityClaims struct {
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	PublicMetadata PublicMetadata `json:"public_metadata"`
	jwt.RegisteredClaims
}

type PublicMetadata struct {
	Role string `json:"role"`
}

// Authenticator проверяет подпись токена и кладет Identity в контекст.
// Пользователей сам не аутентифицирует.
type Authenticator struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthenticator(secret string, logger *zap.Logger) *Authenticator {
	return &Authenticator{[]byte(secret), logger}
}

func (a *Authenticator) Identify(token string) (model.Identity, error) {
	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.PublicMetadata.Role,
	}, nil
}

func bearer(req *http.Request) string {
	h := req.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Customer - маршруты для любого вошедшего пользователя
func (a *Authenticator) Customer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		identity, ok := a.authenticate(w, req)
		if !ok {
			return
		}
		next(w, req.WithContext(context.WithValue(req.Context(), identityKey{}, identity)))
	}
}

// Admin - только role=admin
func (a *Authenticator) Admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		identity, ok := a.authenticate(w, req)
		if !ok {
			return
		}
		if !identity.IsAdmin() {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		next(w, req.WithContext(context.WithValue(req.Context(), identityKey{}, identity)))
	}
}

func (a *Authenticator) authenticate(w http.ResponseWriter, req *http.Request) (model.Identity, bool) {
	token := bearer(req)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgUnauthenticated)
		return model.Identity{}, false
	}
	identity, err := a.Identify(token)
	if err != nil {
		a.logger.Info("Token rejected", zap.String("path", req.URL.Path))
		writeError(w, http.StatusUnauthorized, msgUnauthenticated)
		return model.Identity{}, false
	}
	return identity, true
}

func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
