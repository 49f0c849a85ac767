package service

import (
	"context"
	"errors"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"
	"github.com/HoneyKnight/foodgram-project-react/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned on any login failure; handlers map it
// to 401 without revealing which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterInput carries the sign-up fields.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// AuthService handles registration and login.
type AuthService struct {
	users        *repository.UserRepository
	jwtSecretKey []byte
}

// NewAuthService creates and returns a new AuthService.
func NewAuthService(users *repository.UserRepository, jwtSecretKey []byte) *AuthService {
	return &AuthService{users: users, jwtSecretKey: jwtSecretKey}
}

// Register creates a user with a bcrypt-hashed password.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a user with this email or username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a JWT token.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, user.Email, a.jwtSecretKey)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
