package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/pkg/jwt"
	"go-price-scanner/pkg/validator"
)

// Identity is the authenticated caller of a request
type Identity struct {
	UserID  uuid.UUID
	Email   string
	Name    string
	IsAdmin bool
}

type AuthService interface {
	Signup(req *SignupRequest) (*model.User, error)
	Login(email, password string) (*LoginResult, error)
	Logout(identity Identity) error
	Authenticate(token string) (*Identity, error)
	ResetPassword(email, newPassword string) error
	SeedAdmin(name, email, password string) (bool, error)
}

type SignupRequest struct {
	Name            string `json:"name" form:"name" validate:"required,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email,max=100"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

type LoginResult struct {
	Token    string
	Identity Identity
}

type authService struct {
	userRepo repository.UserRepository
	signer   *jwt.Signer
}

func NewAuthService(userRepo repository.UserRepository, signer *jwt.Signer) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signer,
	}
}

func (s *authService) Signup(req *SignupRequest) (*model.User, error) {
	// 1. Passwords must match before anything else
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	// 2. Validate request
	req.Name = strings.TrimSpace(req.Name)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, newError(ErrValidation,
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag), nil)
	}

	// 3. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, newError(ErrStorage, "failed to check email", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		PaymentStatus: model.PaymentPending,
		IsAdmin:       false,
		CSVUploaded:   false,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, newError(ErrValidation, "failed to hash password", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		// lost a race against a concurrent signup with the same email
		if exists, _ := s.userRepo.ExistsByEmail(req.Email); exists {
			return nil, ErrEmailExists
		}
		return nil, newError(ErrStorage, "failed to create user", err)
	}

	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, newError(ErrStorage, "failed to load user", err)
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Single Session: Generate New Token Version
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, newError(ErrStorage, "failed to update session", err)
	}

	// 4. Generate session token with TokenVersion
	token, err := s.signer.GenerateToken(user.ID, user.Email, user.Name, user.IsAdmin, newTokenVersion)
	if err != nil {
		return nil, newError(ErrStorage, "failed to generate token", err)
	}

	return &LoginResult{Token: token, Identity: identityOf(user)}, nil
}

// Logout rotates the token version, which invalidates every cookie issued so far
func (s *authService) Logout(identity Identity) error {
	if err := s.userRepo.UpdateTokenVersion(identity.UserID, uuid.New().String()); err != nil {
		return newError(ErrStorage, "failed to end session", err)
	}
	return nil
}

func (s *authService) Authenticate(token string) (*Identity, error) {
	// 1. Validate token
	claims, err := s.signer.ValidateToken(token)
	if err != nil {
		return nil, newError(ErrAuth, "invalid session", err)
	}

	// 2. Check strict session against DB
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, newError(ErrStorage, "failed to load user", err)
	}
	if user.TokenVersion == "" || user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionExpired
	}

	// Role is read from the row, not from the token
	identity := identityOf(user)
	return &identity, nil
}

func (s *authService) ResetPassword(email, newPassword string) error {
	if newPassword == "" {
		return newError(ErrValidation, "password is required", nil)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "user not found", nil)
		}
		return newError(ErrStorage, "failed to load user", err)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return newError(ErrValidation, "failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return newError(ErrStorage, "failed to update password", err)
	}

	// Invalidate existing sessions
	return s.Logout(identityOf(user))
}

// SeedAdmin creates an admin account unless the email is already taken.
// It reports whether a user was created.
func (s *authService) SeedAdmin(name, email, password string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return false, newError(ErrStorage, "failed to check email", err)
	}
	if exists {
		return false, nil
	}

	admin := &model.User{
		Name:          name,
		Email:         email,
		PaymentStatus: model.PaymentPaid,
		IsAdmin:       true,
	}
	if err := admin.SetPassword(password); err != nil {
		return false, newError(ErrValidation, "failed to hash password", err)
	}
	if err := s.userRepo.Create(admin); err != nil {
		return false, newError(ErrStorage, "failed to create admin", err)
	}
	return true, nil
}

func identityOf(u *model.User) Identity {
	return Identity{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}
