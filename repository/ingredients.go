package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// IngredientRepository is a struct that holds the database connection.
type IngredientRepository struct {
	DB *gorm.DB
}

// NewIngredientRepository creates and returns a new IngredientRepository.
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

// List returns ingredients ordered by name, optionally narrowed to names
// containing the given fragment (case-insensitive).
func (r *IngredientRepository) List(ctx context.Context, name string) ([]models.Ingredient, error) {
	q := r.DB.WithContext(ctx).Order("name")
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByID fetches one ingredient.
func (r *IngredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.DB.WithContext(ctx).First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("ingredient")
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ByIDs fetches the ingredients with the given ids.
func (r *IngredientRepository) ByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
