package repository

import (
	"context"

	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// ShoppingRow is one aggregated line item: same-named ingredients with the
// same measurement unit collapse into a single row with a summed amount.
type ShoppingRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// ShoppingRepository runs the cart aggregation query.
type ShoppingRepository struct {
	DB *gorm.DB
}

// NewShoppingRepository creates and returns a new ShoppingRepository.
func NewShoppingRepository(db *gorm.DB) *ShoppingRepository {
	return &ShoppingRepository{DB: db}
}

// Aggregate collects every ingredient line of every recipe in the user's
// cart, grouped by (name, measurement unit), summed, and ordered by name.
// The grouping key is deliberately the name+unit pair, not the ingredient
// id: two ingredient rows that read the same are one shopping-list item.
func (r *ShoppingRepository) Aggregate(ctx context.Context, userID uint) ([]ShoppingRow, error) {
	var rows []ShoppingRow
	err := r.DB.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
