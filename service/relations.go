package service

import (
	"context"
	"errors"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"

	"gorm.io/gorm"
)

// relationKind parameterizes the toggle state machine: the same
// add/remove protocol serves favorites, cart entries and subscriptions,
// differing only in messages and (for follows) the self-reference ban.
type relationKind struct {
	alreadyMsg string
	missingMsg string
}

var (
	favoriteKind = relationKind{
		alreadyMsg: "recipe already in favorites",
		missingMsg: "recipe is not in favorites",
	}
	cartKind = relationKind{
		alreadyMsg: "recipe already in shopping cart",
		missingMsg: "recipe is not in shopping cart",
	}
	followKind = relationKind{
		alreadyMsg: "already subscribed to this author",
		missingMsg: "not subscribed to this author",
	}
)

// Subscription is the denormalized view returned when following an
// author: profile, a capped recipe preview list and the total count.
type Subscription struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

// RelationService applies the toggle protocol to the three unique-pair
// relations.
type RelationService struct {
	relations *repository.RelationRepository
	recipes   *repository.RecipeRepository
	users     *repository.UserRepository
}

// NewRelationService creates and returns a new RelationService.
func NewRelationService(
	relations *repository.RelationRepository,
	recipes *repository.RecipeRepository,
	users *repository.UserRepository,
) *RelationService {
	return &RelationService{relations: relations, recipes: recipes, users: users}
}

// added translates the constraint violation of a duplicate insert into
// the kind's conflict error. The insert itself is the existence check:
// there is no read-then-write window for a concurrent duplicate to race.
func added(err error, kind relationKind) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(kind.alreadyMsg)
	}
	return err
}

// removed turns a delete that matched nothing into the kind's conflict
// error; removing an absent pair is an explicit failure, not a no-op.
func removed(rows int64, err error, kind relationKind) error {
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.Conflict(kind.missingMsg)
	}
	return nil
}

// AddFavorite bookmarks the recipe and returns it for the short-view
// response.
func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := added(s.relations.AddFavorite(ctx, userID, recipeID), favoriteKind); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveFavorite deletes the bookmark.
func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	rows, err := s.relations.RemoveFavorite(ctx, userID, recipeID)
	return removed(rows, err, favoriteKind)
}

// AddToCart puts the recipe into the user's shopping cart.
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := added(s.relations.AddCartEntry(ctx, userID, recipeID), cartKind); err != nil {
		return nil, err
	}
	return recipe, nil
}

// RemoveFromCart takes the recipe out of the cart.
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	rows, err := s.relations.RemoveCartEntry(ctx, userID, recipeID)
	return removed(rows, err, cartKind)
}

// Subscribe follows the author. The self-reference ban is checked before
// the author lookup and before any existence check.
func (s *RelationService) Subscribe(ctx context.Context, followerID, authorID uint, recipesLimit int) (*Subscription, error) {
	if followerID == authorID {
		return nil, apperr.Conflict("self-subscription is not allowed")
	}
	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := added(s.relations.AddFollow(ctx, followerID, authorID), followKind); err != nil {
		return nil, err
	}
	return s.subscriptionView(ctx, *author, recipesLimit)
}

// Unsubscribe stops following the author.
func (s *RelationService) Unsubscribe(ctx context.Context, followerID, authorID uint) error {
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		return err
	}
	rows, err := s.relations.RemoveFollow(ctx, followerID, authorID)
	return removed(rows, err, followKind)
}

// Subscriptions returns one page of followed authors in the same shape
// the subscribe response uses.
func (s *RelationService) Subscriptions(ctx context.Context, userID uint, offset, limit, recipesLimit int) ([]Subscription, int64, error) {
	authors, total, err := s.users.Subscriptions(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	subs := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscriptionView(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}

// IsSubscribed reports whether the requester follows the author; used to
// decorate standalone user payloads.
func (s *RelationService) IsSubscribed(ctx context.Context, requesterID *uint, authorID uint) (bool, error) {
	if requesterID == nil {
		return false, nil
	}
	set, err := s.relations.FollowedAuthorIDs(ctx, *requesterID, []uint{authorID})
	if err != nil {
		return false, err
	}
	return set[authorID], nil
}

func (s *RelationService) subscriptionView(ctx context.Context, author models.User, recipesLimit int) (*Subscription, error) {
	recipes, err := s.recipes.RecentByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &Subscription{Author: author, Recipes: recipes, RecipesCount: count}, nil
}
