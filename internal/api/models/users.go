package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserActive  = "active"
	UserBlocked = "blocked"
)

type User struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Login    string `json:"login" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"column:password_hash;not null"`
	Role     string `json:"role" gorm:"not null;default:'user'"`   // "user" or "admin"
	Status   string `json:"status" gorm:"not null;default:'active'"` // blocked users cannot log in
}

func (User) TableName() string {
	return "users"
}
