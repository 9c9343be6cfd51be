package model

// Role is the access level stored on an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an application account. Rows are created by the Account Service;
// the seeder only reads them and promotes roles.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:64;not null" json:"username"`
	Password string `gorm:"size:128;not null" json:"-"`
	Email    string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Role     Role   `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
}

func (User) TableName() string { return TableUser }
