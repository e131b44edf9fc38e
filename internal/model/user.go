package model

import (
	"golang.org/x/crypto/bcrypt"
)

// Valid user roles
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleManager = "manager"
)

var ValidRoles = []string{RoleAdmin, RoleStaff, RoleManager}

// User represents an authenticated warehouse staff member
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Role     string `gorm:"type:varchar(50);not null;default:staff" json:"role" validate:"required,oneof=admin staff manager"`
}

// SetPassword hashes and sets the user's password with the given bcrypt cost
func (u *User) SetPassword(password string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
