package service

import (
	"context"

	"github.com/HoneyKnight/foodgram-project-react/models"
)

// AnnotatedRecipe is a recipe plus the per-requester derived flags. The
// flags are computed at read time and never stored.
type AnnotatedRecipe struct {
	models.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorSubscribed bool
}

// annotate attaches the favorite/cart/subscription flags for the whole
// collection at once: one membership query per relation, never one per
// recipe. Anonymous requesters get all-false flags without touching the
// database.
func (s *RecipeService) annotate(ctx context.Context, requesterID *uint, recipes []models.Recipe) ([]AnnotatedRecipe, error) {
	annotated := make([]AnnotatedRecipe, len(recipes))
	for i, recipe := range recipes {
		annotated[i] = AnnotatedRecipe{Recipe: recipe}
	}
	if requesterID == nil || len(recipes) == 0 {
		return annotated, nil
	}

	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i, recipe := range recipes {
		recipeIDs[i] = recipe.ID
		authorIDs[i] = recipe.AuthorID
	}

	favorited, err := s.relations.FavoritedIDs(ctx, *requesterID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.relations.InCartIDs(ctx, *requesterID, recipeIDs)
	if err != nil {
		return nil, err
	}
	followed, err := s.relations.FollowedAuthorIDs(ctx, *requesterID, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range annotated {
		annotated[i].IsFavorited = favorited[annotated[i].ID]
		annotated[i].IsInShoppingCart = inCart[annotated[i].ID]
		annotated[i].AuthorSubscribed = followed[annotated[i].AuthorID]
	}
	return annotated, nil
}
