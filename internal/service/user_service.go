package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/query"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/store"

	"go.uber.org/zap"
)

// ErrSelfDelete a user cannot delete their own account
var ErrSelfDelete = errors.New("cannot delete your own account")

// ErrDemoAccount the login account of a role cannot be deleted
var ErrDemoAccount = errors.New("demo login accounts cannot be deleted")

// UserService user management page
type UserService interface {
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	DeleteUser(ctx context.Context, req DeleteUserRequest) error
}

type userService struct {
	users     repository.UsersRepository
	publisher store.Publisher
	logger    *zap.Logger
}

func NewUserService(users repository.UsersRepository, publisher store.Publisher, logger *zap.Logger) UserService {
	return &userService{users: users, publisher: publisher, logger: logger}
}

// ListUsersRequest Role is a role or "all"
type ListUsersRequest struct {
	Actor  domain.User
	Search string
	Role   string
}

// UserRow a user plus what the actor may do with it
type UserRow struct {
	domain.User
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

type ListUsersResponse struct {
	Items           []UserRow     `json:"items"`
	Total           int           `json:"total"`
	ActiveCount     int           `json:"activeCount"`
	AssignableRoles []domain.Role `json:"assignableRoles"`
	CanManageAdmins bool          `json:"canManageAdmins"`
}

func (s *userService) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	cat, err := query.ParseCategory(req.Role, domain.ParseRole)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	matched := query.Filter(all, req.Search, cat, query.UserSpec)
	canEdit := access.CanManageUsers(req.Actor.Role)
	rows := make([]UserRow, 0, len(matched))
	active := 0
	for _, u := range matched {
		if u.IsActive {
			active++
		}
		rows = append(rows, UserRow{
			User:      u,
			CanEdit:   canEdit,
			CanDelete: u.ID != req.Actor.ID && !repository.IsDemoAccount(u) && access.CanDeleteUser(req.Actor.Role, u.Role),
		})
	}

	return &ListUsersResponse{
		Items:           rows,
		Total:           len(rows),
		ActiveCount:     active,
		AssignableRoles: access.AssignableRoles(req.Actor.Role),
		CanManageAdmins: access.CanManageAdmins(req.Actor.Role),
	}, nil
}

type DeleteUserRequest struct {
	Actor  domain.User
	UserID string
}

func (s *userService) DeleteUser(ctx context.Context, req DeleteUserRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	if req.UserID == req.Actor.ID {
		return ErrSelfDelete
	}

	target, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !access.CanDeleteUser(req.Actor.Role, target.Role) {
		return fmt.Errorf("%w: %s may not delete %s", access.ErrPermissionDenied, req.Actor.Role, target.Role)
	}
	if repository.IsDemoAccount(target) {
		return fmt.Errorf("%w: %s", ErrDemoAccount, target.ID)
	}
	if err := s.users.DeleteUser(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("actor_id", req.Actor.ID),
		zap.String("user_id", target.ID),
		zap.String("user_role", target.Role.String()),
	)
	if err := s.publisher.Publish(ctx, store.Event{
		Type:      store.EventUserDeleted,
		ActorID:   req.Actor.ID,
		Role:      req.Actor.Role.String(),
		SubjectID: target.ID,
		Attrs:     map[string]string{"subject_role": target.Role.String()},
		At:        time.Now(),
	}); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", store.EventUserDeleted), zap.Error(err))
	}
	return nil
}
