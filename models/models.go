package models

import (
	"time"
)

// User represents an application user. Deleting a user cascades to their
// recipes and to every relation row that references them.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
}

// Tag is seeded reference data attached to recipes.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:10;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

// Ingredient is reference data; recipes attach it through RecipeIngredient.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:100;not null;index" json:"name"`
	MeasurementUnit string `gorm:"size:100;not null" json:"measurement_unit"`
}

// Recipe is the central entity. Ingredient lines and tag links are owned by
// the recipe and are always written atomically with it.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	Text        string    `gorm:"size:500;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"autoCreateTime;index" json:"pub_date"`

	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient is one composition line: (recipe, ingredient) is unique,
// a recipe cannot list the same ingredient twice.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// Favorite is a user's bookmark of a recipe.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }

// CartEntry marks a recipe as part of a user's shopping cart.
type CartEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_pair" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_pair" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartEntry) TableName() string { return "cart_entries" }

// Follow is a subscription of one user to an author. Self-follow is
// rejected in the service layer before the row is ever written.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
