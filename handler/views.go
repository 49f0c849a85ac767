package handler

import (
	"time"

	"github.com/HoneyKnight/foodgram-project-react/models"
	"github.com/HoneyKnight/foodgram-project-react/service"
)

// UserView is the public user shape; is_subscribed is relative to the
// requester.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func newUserView(u models.User, isSubscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// IngredientLineView flattens a composition line for the read path:
// id/name/unit come from the ingredient, amount from the line.
type IngredientLineView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full annotated recipe payload.
type RecipeView struct {
	ID               uint                 `json:"id"`
	Tags             []models.Tag         `json:"tags"`
	Author           UserView             `json:"author"`
	Ingredients      []IngredientLineView `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
	PubDate          time.Time            `json:"pub_date"`
}

func newRecipeView(r service.AnnotatedRecipe) RecipeView {
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	lines := make([]IngredientLineView, 0, len(r.Recipe.Ingredients))
	for _, line := range r.Recipe.Ingredients {
		lines = append(lines, IngredientLineView{
			ID:              line.Ingredient.ID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	return RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           newUserView(r.Author, r.AuthorSubscribed),
		Ingredients:      lines,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}
}

func newRecipeViews(recipes []service.AnnotatedRecipe) []RecipeView {
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, newRecipeView(r))
	}
	return views
}

// RecipeShortView is the compact recipe summary used in toggle responses
// and subscription previews.
type RecipeShortView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func newRecipeShortView(r models.Recipe) RecipeShortView {
	return RecipeShortView{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// SubscriptionView is the followed-author payload: profile plus a recipe
// preview and the total recipe count.
type SubscriptionView struct {
	ID           uint              `json:"id"`
	Email        string            `json:"email"`
	Username     string            `json:"username"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	IsSubscribed bool              `json:"is_subscribed"`
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

func newSubscriptionView(s service.Subscription) SubscriptionView {
	previews := make([]RecipeShortView, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		previews = append(previews, newRecipeShortView(r))
	}
	return SubscriptionView{
		ID:           s.Author.ID,
		Email:        s.Author.Email,
		Username:     s.Author.Username,
		FirstName:    s.Author.FirstName,
		LastName:     s.Author.LastName,
		IsSubscribed: true,
		Recipes:      previews,
		RecipesCount: s.RecipesCount,
	}
}
