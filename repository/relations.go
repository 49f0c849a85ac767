package repository

import (
	"context"

	"github.com/HoneyKnight/foodgram-project-react/models"

	"gorm.io/gorm"
)

// RelationRepository handles the three unique-pair relations. Adds are
// plain inserts: the composite unique index is the race-resolution
// mechanism, so a concurrent duplicate surfaces as gorm.ErrDuplicatedKey
// instead of slipping through a read-then-write window. Removes are
// conditional deletes reporting the affected row count.
type RelationRepository struct {
	DB *gorm.DB
}

// NewRelationRepository creates and returns a new RelationRepository.
func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{DB: db}
}

func (r *RelationRepository) AddFavorite(ctx context.Context, userID, recipeID uint) error {
	return r.DB.WithContext(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

func (r *RelationRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *RelationRepository) AddCartEntry(ctx context.Context, userID, recipeID uint) error {
	return r.DB.WithContext(ctx).Create(&models.CartEntry{UserID: userID, RecipeID: recipeID}).Error
}

func (r *RelationRepository) RemoveCartEntry(ctx context.Context, userID, recipeID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartEntry{})
	return res.RowsAffected, res.Error
}

func (r *RelationRepository) AddFollow(ctx context.Context, followerID, authorID uint) error {
	return r.DB.WithContext(ctx).Create(&models.Follow{FollowerID: followerID, AuthorID: authorID}).Error
}

func (r *RelationRepository) RemoveFollow(ctx context.Context, followerID, authorID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

// FavoritedIDs returns which of the given recipes the user has favorited,
// as a membership set. One query regardless of how many recipes are asked
// about.
func (r *RelationRepository) FavoritedIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.pluckSet(ctx, &models.Favorite{}, "recipe_id", "user_id = ? AND recipe_id IN ?", userID, recipeIDs)
}

// InCartIDs returns which of the given recipes are in the user's cart.
func (r *RelationRepository) InCartIDs(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return r.pluckSet(ctx, &models.CartEntry{}, "recipe_id", "user_id = ? AND recipe_id IN ?", userID, recipeIDs)
}

// FollowedAuthorIDs returns which of the given authors the user follows.
func (r *RelationRepository) FollowedAuthorIDs(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	return r.pluckSet(ctx, &models.Follow{}, "author_id", "follower_id = ? AND author_id IN ?", userID, authorIDs)
}

func (r *RelationRepository) pluckSet(ctx context.Context, model interface{}, column, cond string, args ...interface{}) (map[uint]bool, error) {
	set := make(map[uint]bool)
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(model).
		Where(cond, args...).
		Pluck(column, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
