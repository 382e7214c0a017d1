package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	SetModerator(ctx context.Context, userID string, moderator bool) (bool, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection("users"),
	}
}

// GetByID 精确查询
func (s *userRepoImpl) GetByID(ctx context.Context, userID string) (*User, error) {
	var user User
	err := s.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetModerator 更新审核员标记，返回是否命中用户
func (s *userRepoImpl) SetModerator(ctx context.Context, userID string, moderator bool) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"moderator": moderator}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}
