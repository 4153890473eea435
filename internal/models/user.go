package models

// User is an application account. Accounts are created at bootstrap only;
// there is no registration or profile management surface.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string `json:"-" gorm:"not null;size:255;column:password_hash"`
}

func (User) TableName() string {
	return "users"
}
