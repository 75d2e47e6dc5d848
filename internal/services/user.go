package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListMembers(ctx context.Context) ([]*domain.User, error)
	// RevokeMember is the admin "remove member" action.
	RevokeMember(ctx context.Context, id uuid.UUID) (int64, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

// Register stores a new identity as a guest. Clients cannot choose their
// own role.
func (us *userService) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || strings.TrimSpace(user.Email) == "" {
		return nil, apierr.InvalidArgument("email is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := us.userRepo.GetByEmail(dbc, user.Email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("lookup user: %w", err))
	}
	if existing != nil {
		return nil, apierr.Conflict("user already exists")
	}
	user.ID = uuid.Nil
	user.Role = domain.RoleGuest
	created, err := us.userRepo.Create(dbc, []*domain.User{user})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("user already exists")
		}
		return nil, apierr.Internal(fmt.Errorf("create user: %w", err))
	}
	us.log.Info("user registered", "email", created[0].Email)
	return created[0], nil
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get user: %w", err))
	}
	return u, nil
}

func (us *userService) ListMembers(ctx context.Context) ([]*domain.User, error) {
	out, err := us.userRepo.ListByRole(dbctx.Context{Ctx: ctx}, domain.RoleMember)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list members: %w", err))
	}
	return out, nil
}

func (us *userService) RevokeMember(ctx context.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, apierr.InvalidArgument("invalid member id")
	}
	n, err := us.userRepo.UpdateRoleByID(dbctx.Context{Ctx: ctx}, id, domain.RoleRevoked)
	if err != nil {
		return 0, apierr.Internal(fmt.Errorf("revoke member: %w", err))
	}
	us.log.Info("member revoked", "user_id", id, "matched", n)
	return n, nil
}
