package models

import "time"

// User is the identity record in Postgres. The profile service only
// reads it for ownership linkage and deletes it during the account
// cascade; registration and login live elsewhere.
type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	Avatar       string    `gorm:"column:avatar;type:text" json:"avatar"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
