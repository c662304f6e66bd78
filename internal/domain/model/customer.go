package model

import "time"

type Customer struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	//メールアドレスは重複不可
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	Phone     string    `gorm:"type:varchar(15)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
