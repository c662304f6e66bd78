package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	repo "inventory/internal/repository"
)

// JWTを発行する約束（実装はcmd側）
type TokenIssuer interface {
	Issue(userID int64, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// パスワードをハッシュ化する約束（seedで使う）
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

func NewAuthUsecase(userRepo repo.UserRepository, verifier PasswordVerifier, issuer TokenIssuer, clock Clock) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string `json:"token"`
}

// ログイン。メール＋パスワードが合えばトークンを返す。
// どこで失敗したかは区別せず同じメッセージにする。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repo.ErrUserNotFound {
			return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	now := u.clock.Now()
	token, _, err := u.issuer.Issue(user.ID, user.TokenVersion, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token issue failed")
	}

	//最終ログイン時刻更新
	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoginOutput{Token: token}, nil
}

// ログアウト。token_versionを+1して発行済みトークンを全て無効化する。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	err := u.userRepo.IncrementTokenVersion(ctx, userID)
	if err == repo.ErrUserNotFound {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
