package database

import (
	"fmt"

	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/logger"
	"github.com/HoneyKnight/foodgram-project-react/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the PostgreSQL connection. TranslateError is on so that
// unique-constraint violations surface as gorm.ErrDuplicatedKey, which the
// toggle protocol relies on for race resolution.
func InitDB(c *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	logger.Info("database connection established")
	return db, nil
}

// Migrate runs the schema migrations and seeds the tag fixture.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartEntry{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return SeedTags(db)
}

// SeedTags creates the fixed tag set. Idempotent: existing slugs are left
// untouched.
func SeedTags(db *gorm.DB) error {
	tags := []models.Tag{
		{Name: "Завтрак", Color: "#3DD25A", Slug: "breakfast"},
		{Name: "Обед", Color: "#10B7FF", Slug: "lunch"},
		{Name: "Ужин", Color: "#F61930", Slug: "dinner"},
	}
	for _, tag := range tags {
		err := db.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error
		if err != nil {
			return fmt.Errorf("seeding tag %q: %w", tag.Slug, err)
		}
	}
	logger.Debug("tag fixture seeded", zap.Int("count", len(tags)))
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to retrieve sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("error closing the database connection", zap.Error(err))
	}
}
