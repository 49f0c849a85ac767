package repository

import (
	"context"
	"errors"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// RecipeFilters narrows the recipe list query. The boolean membership
// filters are only applied when RequesterID is set; anonymous callers
// cannot filter by them.
type RecipeFilters struct {
	AuthorIDs      []uint
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
	RequesterID    *uint
	Offset         int
	Limit          int
}

// RecipeRepository is a struct that holds the database connection.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

// preloaded attaches the associations every read path needs: tags, the
// author, and ingredient lines ordered by ingredient name.
func (r *RecipeRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
				Order("ingredients.name")
		}).
		Preload("Ingredients.Ingredient")
}

// GetByID fetches one recipe with all associations.
func (r *RecipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.preloaded(r.DB.WithContext(ctx)).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("recipe")
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns one page of recipes, newest first, plus the unpaginated
// total. Membership filters are expressed as EXISTS sub-queries so the
// whole thing stays a single SELECT regardless of result size.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilters) ([]models.Recipe, int64, error) {
	filtered := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Recipe{})
		if len(f.AuthorIDs) > 0 {
			q = q.Where("recipes.author_id IN ?", f.AuthorIDs)
		}
		if len(f.TagSlugs) > 0 {
			q = q.Where(
				"EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id = recipes.id AND t.slug IN ?)",
				f.TagSlugs)
		}
		if f.RequesterID != nil {
			if f.Favorited {
				q = q.Where(
					"EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = ? AND f.recipe_id = recipes.id)",
					*f.RequesterID)
			}
			if f.InShoppingCart {
				q = q.Where(
					"EXISTS (SELECT 1 FROM cart_entries c WHERE c.user_id = ? AND c.recipe_id = recipes.id)",
					*f.RequesterID)
			}
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := filtered().Order("recipes.pub_date DESC, recipes.id DESC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var recipes []models.Recipe
	if err := r.preloaded(q).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Create persists the recipe together with its ingredient lines and tag
// links as a single transaction; a failure anywhere rolls back everything.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// Update replaces the recipe's scalar fields, its whole line set and its
// whole tag set atomically. Lines are deleted and reinserted, not diffed.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// Delete removes the recipe and everything hanging off it. The dependent
// rows are deleted explicitly so behavior does not depend on the DB having
// enforced cascades.
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// RecentByAuthor returns the author's newest recipes, capped by limit
// (0 means no cap). Used for the subscription preview payload.
func (r *RecipeRepository) RecentByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	q := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthor returns the author's total recipe count.
func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
