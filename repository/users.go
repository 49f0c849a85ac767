package repository

import (
	"context"
	"errors"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// UserRepository is a struct that holds the database connection.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates and returns a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser creates a new user in the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// GetUserByID fetches a user from the database by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user from the database by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Subscriptions returns one page of the authors the user follows, most
// recent subscription first, plus the total subscription count.
func (r *UserRepository) Subscriptions(ctx context.Context, followerID uint, offset, limit int) ([]models.User, int64, error) {
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).
			Model(&models.User{}).
			Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.follower_id = ?", followerID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base().Order("follows.id DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var authors []models.User
	if err := q.Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
