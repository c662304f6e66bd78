package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//最終ログイン時刻などの更新
	Update(ctx context.Context, user *model.User) error

	//トークンのバージョンを+1（発行済みトークンを全て無効化する）
	IncrementTokenVersion(ctx context.Context, userID int64) error

	CountAll(ctx context.Context) (int64, error)
}
