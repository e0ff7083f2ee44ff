package services

import (
	"errors"
	"strings"

	"restaurant-api/apperr"
	"restaurant-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 8

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Email == "" {
		return nil, apperr.Validation("username and email are required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}
	if in.Password != in.PasswordConfirm {
		return nil, apperr.Validation("Passwords don't match")
	}
	if err := s.ensureUnique(0, in.Email, in.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}
	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Validation("A user with that email or username already exists")
		}
		return nil, apperr.Internal(err, "failed to create user")
	}
	return &user, nil
}

// Login checks email and password. Unknown emails and wrong passwords get
// the same answer.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is disabled")
	}
	return &user, nil
}

// AdminLogin is Login restricted to staff and superusers.
func (s *AuthService) AdminLogin(email, password string) (*models.User, error) {
	user, err := s.Login(email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}
	return user, nil
}

func (s *AuthService) GetUser(id uint) (*models.User, error) {
	return firstByID[models.User](s.DB, id, "User")
}

type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
}

func (s *AuthService) UpdateProfile(id uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, apperr.Validation("username cannot be empty")
		}
		if name != user.Username {
			if err := s.ensureUnique(id, "", name); err != nil {
				return nil, err
			}
			updates["username"] = name
		}
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if len(updates) > 0 {
		if err := s.DB.Model(user).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, apperr.Validation("A user with that username already exists")
			}
			return nil, apperr.Internal(err, "failed to update profile")
		}
	}
	return s.GetUser(id)
}

func (s *AuthService) ensureUnique(selfID uint, email, username string) error {
	check := func(column, value, msg string) error {
		if value == "" {
			return nil
		}
		var n int64
		err := s.DB.Model(&models.User{}).Where(column+" = ? AND id <> ?", value, selfID).Count(&n).Error
		if err != nil {
			return apperr.Internal(err, "failed to check "+column)
		}
		if n > 0 {
			return apperr.Validation("%s", msg).With("field", column)
		}
		return nil
	}
	if err := check("email", email, "A user with that email already exists"); err != nil {
		return err
	}
	return check("username", username, "A user with that username already exists")
}
