package seed

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"inventory/internal/domain/model"
	"inventory/internal/repository"
	"inventory/internal/usecase"
)

// EnsureDefaultUser はユーザーが1人もいない場合に
// ADMIN_EMAIL / ADMIN_PASSWORD から初期ユーザーを作る。
// どちらかが未設定ならスキップ（ログだけ出す）。
func EnsureDefaultUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	hasher usecase.PasswordHasher,
	logger *zap.Logger,
) error {
	count, err := userRepo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set, skipping seed")
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		TokenVersion: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	logger.Info("seeded default user", zap.String("email", email))
	return nil
}
