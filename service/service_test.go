package service

import (
	"context"
	"testing"

	"github.com/HoneyKnight/foodgram-project-react/database"
	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the full schema and
// tag fixture. Pool capped at one connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

type stubImages struct{}

func (stubImages) Save(string) (string, error) {
	return "/media/recipes/images/stub.png", nil
}

type testEnv struct {
	db        *gorm.DB
	recipes   *RecipeService
	relations *RelationService
	shopping  *ShoppingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	recipeRepo := repository.NewRecipeRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	shoppingRepo := repository.NewShoppingRepository(db)
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)

	return &testEnv{
		db:        db,
		recipes:   NewRecipeService(recipeRepo, tagRepo, ingredientRepo, relationRepo, stubImages{}),
		relations: NewRelationService(relationRepo, recipeRepo, userRepo),
		shopping:  NewShoppingService(shoppingRepo, "Shopping list:\n\n"),
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// createRecipe goes through the composition engine with the seeded
// breakfast tag and a stub image.
func (e *testEnv) createRecipe(t *testing.T, authorID uint, name string, lines []IngredientAmountInput) *AnnotatedRecipe {
	t.Helper()
	recipe, err := e.recipes.Create(context.Background(), authorID, RecipeInput{
		Name:        name,
		Image:       "c3R1Yg==",
		Text:        "test recipe",
		CookingTime: 10,
		TagIDs:      []uint{1},
		Ingredients: lines,
	})
	require.NoError(t, err)
	return recipe
}
