package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a tenant of the lookup service
type User struct {
	BaseModel
	Name          string        `gorm:"type:varchar(100);not null" json:"name"`
	Email         string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password      string        `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	PaymentStatus PaymentStatus `gorm:"type:varchar(7);not null;default:'Pending'" json:"payment_status"`
	IsAdmin       bool          `gorm:"default:false" json:"is_admin"`
	CSVUploaded   bool          `gorm:"default:false" json:"csv_uploaded"`
	TokenVersion  string        `gorm:"type:varchar(255);default:''" json:"-"` // Rotated on login and logout

	// Relasi, only declares the products.user_id FK. Never preloaded.
	Products []Product `gorm:"foreignKey:UserID" json:"-"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
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

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	IsAdmin       bool          `json:"is_admin"`
	CSVUploaded   bool          `json:"csv_uploaded"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PaymentStatus: u.PaymentStatus,
		IsAdmin:       u.IsAdmin,
		CSVUploaded:   u.CSVUploaded,
		CreatedAt:     u.CreatedAt,
	}
}
