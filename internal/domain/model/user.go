package model

import "time"

// APIを操作するアカウント
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`

	//ログアウトで+1される。古いトークンはここで無効になる
	TokenVersion int `gorm:"not null;default:0"`

	IsActive    bool `gorm:"not null;default:true"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
