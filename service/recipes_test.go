package service

import (
	"context"
	"testing"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	salt := createIngredient(t, env.db, "Salt", "g")
	flour := createIngredient(t, env.db, "Flour", "g")

	recipe, err := env.recipes.Create(ctx, author.ID, RecipeInput{
		Name:        "Bread",
		Image:       "c3R1Yg==",
		Text:        "knead and bake",
		CookingTime: 90,
		TagIDs:      []uint{1, 2},
		Ingredients: []IngredientAmountInput{
			{ID: salt.ID, Amount: 5},
			{ID: flour.ID, Amount: 500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bread", recipe.Name)
	assert.Equal(t, author.ID, recipe.AuthorID)
	assert.Len(t, recipe.Tags, 2)
	require.Len(t, recipe.Recipe.Ingredients, 2)
	// lines come back ordered by ingredient name
	assert.Equal(t, "Flour", recipe.Recipe.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "Salt", recipe.Recipe.Ingredients[1].Ingredient.Name)
	// the author's own flags are false until they toggle something
	assert.False(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)
}

func TestCreateRecipeValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	salt := createIngredient(t, env.db, "Salt", "g")

	tests := []struct {
		name  string
		input RecipeInput
	}{
		{
			name: "empty tag set",
			input: RecipeInput{
				Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 5,
				TagIDs:      []uint{},
				Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 1}},
			},
		},
		{
			name: "repeated ingredient",
			input: RecipeInput{
				Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 5,
				TagIDs:      []uint{1},
				Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 2}, {ID: salt.ID, Amount: 3}},
			},
		},
		{
			name: "non-positive amount",
			input: RecipeInput{
				Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 5,
				TagIDs:      []uint{1},
				Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 0}},
			},
		},
		{
			name: "non-positive cooking time",
			input: RecipeInput{
				Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 0,
				TagIDs:      []uint{1},
				Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 1}},
			},
		},
		{
			name: "missing image",
			input: RecipeInput{
				Name: "x", Text: "x", CookingTime: 5,
				TagIDs:      []uint{1},
				Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.recipes.Create(ctx, author.ID, tt.input)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)

			// the rejected submission must not leave partial writes behind
			var recipes, lines int64
			env.db.Model(&models.Recipe{}).Count(&recipes)
			env.db.Model(&models.RecipeIngredient{}).Count(&lines)
			assert.Zero(t, recipes)
			assert.Zero(t, lines)
		})
	}
}

func TestCreateRecipeUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	salt := createIngredient(t, env.db, "Salt", "g")

	_, err := env.recipes.Create(ctx, author.ID, RecipeInput{
		Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 5,
		TagIDs:      []uint{1},
		Ingredients: []IngredientAmountInput{{ID: salt.ID + 100, Amount: 1}},
	})
	assert.True(t, apperr.IsNotFound(err), "expected not-found error, got %v", err)

	_, err = env.recipes.Create(ctx, author.ID, RecipeInput{
		Name: "x", Image: "c3R1Yg==", Text: "x", CookingTime: 5,
		TagIDs:      []uint{99},
		Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 1}},
	})
	assert.True(t, apperr.IsNotFound(err), "expected not-found error, got %v", err)
}

func TestUpdateRecipeReplacesLineSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	salt := createIngredient(t, env.db, "Salt", "g")
	flour := createIngredient(t, env.db, "Flour", "g")

	recipe := env.createRecipe(t, author.ID, "Bread", []IngredientAmountInput{
		{ID: salt.ID, Amount: 2},
		{ID: flour.ID, Amount: 3},
	})

	updated, err := env.recipes.Update(ctx, author.ID, recipe.ID, RecipeInput{
		Name:        "Bread v2",
		Text:        "better bread",
		CookingTime: 60,
		TagIDs:      []uint{2},
		Ingredients: []IngredientAmountInput{{ID: flour.ID, Amount: 5}},
	})
	require.NoError(t, err)

	// full replacement, not a merge
	var lines []models.RecipeIngredient
	require.NoError(t, env.db.Where("recipe_id = ?", recipe.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, flour.ID, lines[0].IngredientID)
	assert.Equal(t, 5, lines[0].Amount)

	assert.Equal(t, "Bread v2", updated.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, uint(2), updated.Tags[0].ID)
	// image was not resubmitted, the stored one stays
	assert.Equal(t, recipe.Image, updated.Image)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	intruder := createUser(t, env.db, "intruder")
	salt := createIngredient(t, env.db, "Salt", "g")

	recipe := env.createRecipe(t, author.ID, "Soup", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})

	_, err := env.recipes.Update(ctx, intruder.ID, recipe.ID, RecipeInput{
		Name: "Stolen", Text: "x", CookingTime: 5,
		TagIDs:      []uint{1},
		Ingredients: []IngredientAmountInput{{ID: salt.ID, Amount: 1}},
	})
	assert.True(t, apperr.IsAuthorization(err), "expected authorization error, got %v", err)

	err = env.recipes.Delete(ctx, intruder.ID, recipe.ID)
	assert.True(t, apperr.IsAuthorization(err), "expected authorization error, got %v", err)
}

func TestDeleteRecipeCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	fan := createUser(t, env.db, "fan")
	salt := createIngredient(t, env.db, "Salt", "g")

	recipe := env.createRecipe(t, author.ID, "Soup", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	_, err := env.relations.AddFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	_, err = env.relations.AddToCart(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, env.recipes.Delete(ctx, author.ID, recipe.ID))

	var lines, favorites, cart int64
	env.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&lines)
	env.db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&favorites)
	env.db.Model(&models.CartEntry{}).Where("recipe_id = ?", recipe.ID).Count(&cart)
	assert.Zero(t, lines)
	assert.Zero(t, favorites)
	assert.Zero(t, cart)
}

func TestListRecipesAnnotations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	reader := createUser(t, env.db, "reader")
	salt := createIngredient(t, env.db, "Salt", "g")

	a := env.createRecipe(t, author.ID, "A", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	b := env.createRecipe(t, author.ID, "B", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	env.createRecipe(t, author.ID, "C", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})

	_, err := env.relations.AddFavorite(ctx, reader.ID, a.ID)
	require.NoError(t, err)
	_, err = env.relations.AddToCart(ctx, reader.ID, b.ID)
	require.NoError(t, err)

	// anonymous: every flag false
	anon, _, err := env.recipes.List(ctx, repository.RecipeFilters{})
	require.NoError(t, err)
	require.Len(t, anon, 3)
	for _, recipe := range anon {
		assert.False(t, recipe.IsFavorited)
		assert.False(t, recipe.IsInShoppingCart)
	}

	// authenticated: flags line up with the relation rows exactly
	listed, _, err := env.recipes.List(ctx, repository.RecipeFilters{RequesterID: &reader.ID})
	require.NoError(t, err)
	require.Len(t, listed, 3)

	favoritedCount := 0
	for _, recipe := range listed {
		if recipe.IsFavorited {
			favoritedCount++
			assert.Equal(t, a.ID, recipe.ID)
		}
		if recipe.IsInShoppingCart {
			assert.Equal(t, b.ID, recipe.ID)
		}
	}
	var favoriteRows int64
	env.db.Model(&models.Favorite{}).Where("user_id = ?", reader.ID).Count(&favoriteRows)
	assert.EqualValues(t, favoriteRows, favoritedCount)
}

func TestListRecipesFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := createUser(t, env.db, "alice")
	bob := createUser(t, env.db, "bob")
	salt := createIngredient(t, env.db, "Salt", "g")

	mine := env.createRecipe(t, alice.ID, "Mine", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	env.createRecipe(t, bob.ID, "Theirs", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})

	byAuthor, total, err := env.recipes.List(ctx, repository.RecipeFilters{AuthorIDs: []uint{alice.ID}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, mine.ID, byAuthor[0].ID)

	byTag, _, err := env.recipes.List(ctx, repository.RecipeFilters{TagSlugs: []string{"breakfast"}})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	noTag, _, err := env.recipes.List(ctx, repository.RecipeFilters{TagSlugs: []string{"dinner"}})
	require.NoError(t, err)
	assert.Empty(t, noTag)

	// favorited filter only bites for the requester that favorited
	_, err = env.relations.AddFavorite(ctx, bob.ID, mine.ID)
	require.NoError(t, err)
	favorited, _, err := env.recipes.List(ctx, repository.RecipeFilters{
		RequesterID: &bob.ID,
		Favorited:   true,
	})
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, mine.ID, favorited[0].ID)
}

func TestListRecipesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := createUser(t, env.db, "author")
	salt := createIngredient(t, env.db, "Salt", "g")

	env.createRecipe(t, author.ID, "first", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	env.createRecipe(t, author.ID, "second", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})
	env.createRecipe(t, author.ID, "third", []IngredientAmountInput{{ID: salt.ID, Amount: 1}})

	listed, _, err := env.recipes.List(ctx, repository.RecipeFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Name)
	assert.Equal(t, "second", listed[1].Name)
	assert.Equal(t, "first", listed[2].Name)
}
