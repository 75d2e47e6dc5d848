package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// AuthService is the identity gate: it mints and verifies bearer tokens and
// resolves roles for the role gates.
type AuthService interface {
	MintToken(ctx context.Context, email string) (string, error)
	VerifyToken(ctx context.Context, token string) (*ctxutil.Identity, error)
	LookupRole(ctx context.Context, email string) (domain.Role, error)
	RequireRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = 10 * 24 * time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) MintToken(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apierr.InvalidArgument("email is required")
	}
	now := time.Now()
	claims := identityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", apierr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

func (as *authService) VerifyToken(ctx context.Context, tokenString string) (*ctxutil.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apierr.Unauthenticated("unauthorized access")
	}
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		as.log.Debug("token rejected", "error", err)
		return nil, apierr.Unauthenticated("unauthorized access")
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return nil, apierr.Unauthenticated("unauthorized access")
	}
	return &ctxutil.Identity{Email: email, Token: tokenString}, nil
}

func (as *authService) LookupRole(ctx context.Context, email string) (domain.Role, error) {
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", apierr.Internal(fmt.Errorf("lookup role: %w", err))
	}
	if u == nil {
		return domain.RoleRevoked, nil
	}
	return domain.ParseRole(string(u.Role)), nil
}

// RequireRole loads the identity and fails with Forbidden unless its role is
// exactly role. Unknown identities are forbidden, never created.
func (as *authService) RequireRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("lookup role: %w", err))
	}
	if u == nil || domain.ParseRole(string(u.Role)) != role {
		return nil, apierr.Forbidden("forbidden access")
	}
	return u, nil
}
