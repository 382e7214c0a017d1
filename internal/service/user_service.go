package service

import (
	"IronProof/internal/pkg/mongo"
	"context"
	log "log/slog"
)

type UserService interface {
	// AssignModeratorClaim 给用户打上审核员标记，仅管理端共享密钥可触达
	AssignModeratorClaim(ctx context.Context, userID string) error
}

type userServiceImpl struct {
	users mongo.UserRepo
}

func NewUserService(users mongo.UserRepo) UserService {
	return &userServiceImpl{
		users: users,
	}
}

func (s *userServiceImpl) AssignModeratorClaim(ctx context.Context, userID string) error {
	ok, err := s.users.SetModerator(ctx, userID, true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	log.InfoContext(ctx, "moderator claim assigned", "user_id", userID)
	return nil
}
