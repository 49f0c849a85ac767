package service

import (
	"context"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"
)

// ImageStore persists an encoded image and returns a stable URL for it.
// The real implementation writes to the media directory; tests stub it.
type ImageStore interface {
	Save(encoded string) (string, error)
}

// IngredientAmountInput is one submitted composition line.
type IngredientAmountInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput carries the writable recipe fields. Image is the base64
// payload from the client, empty meaning "keep the current one" on update.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmountInput
}

// RecipeService owns recipe composition: it validates the submitted tag
// and ingredient sets and persists recipe, lines and tag links as one
// atomic unit.
type RecipeService struct {
	recipes     *repository.RecipeRepository
	tags        *repository.TagRepository
	ingredients *repository.IngredientRepository
	relations   *repository.RelationRepository
	images      ImageStore
}

// NewRecipeService creates and returns a new RecipeService.
func NewRecipeService(
	recipes *repository.RecipeRepository,
	tags *repository.TagRepository,
	ingredients *repository.IngredientRepository,
	relations *repository.RelationRepository,
	images ImageStore,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		relations:   relations,
		images:      images,
	}
}

// List returns one page of annotated recipes plus the unpaginated total.
func (s *RecipeService) List(ctx context.Context, f repository.RecipeFilters) ([]AnnotatedRecipe, int64, error) {
	recipes, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	annotated, err := s.annotate(ctx, f.RequesterID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return annotated, total, nil
}

// Get returns one annotated recipe.
func (s *RecipeService) Get(ctx context.Context, requesterID *uint, id uint) (*AnnotatedRecipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	annotated, err := s.annotate(ctx, requesterID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// Create validates the submission and persists the recipe. Nothing is
// written when any rule fails.
func (s *RecipeService) Create(ctx context.Context, authorID uint, in RecipeInput) (*AnnotatedRecipe, error) {
	if err := validateComposition(in); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, apperr.Validation("image", "image is required")
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveLines(ctx, in.Ingredients)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.Save(in.Image)
	if err != nil {
		return nil, apperr.Validation("image", "invalid image encoding")
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       imageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipes.Create(ctx, recipe, tags, lines); err != nil {
		return nil, err
	}
	return s.Get(ctx, &authorID, recipe.ID)
}

// Update re-validates everything and atomically replaces the full line
// set and tag set. Author-only.
func (s *RecipeService) Update(ctx context.Context, requesterID, recipeID uint, in RecipeInput) (*AnnotatedRecipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != requesterID {
		return nil, apperr.Forbidden("only the author can modify this recipe")
	}
	if err := validateComposition(in); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveLines(ctx, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime
	if in.Image != "" {
		imageURL, err := s.images.Save(in.Image)
		if err != nil {
			return nil, apperr.Validation("image", "invalid image encoding")
		}
		recipe.Image = imageURL
	}

	if err := s.recipes.Update(ctx, recipe, tags, lines); err != nil {
		return nil, err
	}
	return s.Get(ctx, &requesterID, recipe.ID)
}

// Delete removes the recipe and its dependent rows. Author-only.
func (s *RecipeService) Delete(ctx context.Context, requesterID, recipeID uint) error {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != requesterID {
		return apperr.Forbidden("only the author can delete this recipe")
	}
	return s.recipes.Delete(ctx, recipeID)
}

// validateComposition enforces the submission rules shared by create and
// update: at least one tag, no repeated ingredients, positive amounts.
func validateComposition(in RecipeInput) error {
	if len(in.TagIDs) == 0 {
		return apperr.Validation("tags", "at least one tag required")
	}
	if in.CookingTime < 1 {
		return apperr.Validation("cooking_time", "cooking time must be at least 1")
	}
	seen := make(map[uint]bool, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if seen[line.ID] {
			return apperr.Validation("ingredients", "ingredients must not repeat")
		}
		seen[line.ID] = true
		if line.Amount < 1 {
			return apperr.Validation("amount", "amount must be at least 1")
		}
	}
	return nil
}

func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	unique := uniqueIDs(ids)
	tags, err := s.tags.ByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, apperr.NotFound("tag")
	}
	return tags, nil
}

func (s *RecipeService) resolveLines(ctx context.Context, inputs []IngredientAmountInput) ([]models.RecipeIngredient, error) {
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ID)
	}
	if len(ids) > 0 {
		ingredients, err := s.ingredients.ByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(ingredients) != len(ids) {
			return nil, apperr.NotFound("ingredient")
		}
	}
	lines := make([]models.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, models.RecipeIngredient{IngredientID: in.ID, Amount: in.Amount})
	}
	return lines, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
