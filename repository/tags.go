package repository

import (
	"context"
	"errors"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// TagRepository is a struct that holds the database connection.
type TagRepository struct {
	DB *gorm.DB
}

// NewTagRepository creates and returns a new TagRepository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// All returns every tag, in id order.
func (r *TagRepository) All(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID fetches one tag.
func (r *TagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.DB.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("tag")
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ByIDs fetches the tags with the given ids; callers compare lengths to
// detect references to missing tags.
func (r *TagRepository) ByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
