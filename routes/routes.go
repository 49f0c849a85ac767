package routes

import (
	"net/http"

	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/handler"
	"github.com/HoneyKnight/foodgram-project-react/middleware"
	"github.com/HoneyKnight/foodgram-project-react/repository"
	"github.com/HoneyKnight/foodgram-project-react/service"
	"github.com/HoneyKnight/foodgram-project-react/storage"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers and returns the
// HTTP router.
func SetupRouter(db *gorm.DB, cfg *config.Config) (*chi.Mux, error) {
	images, err := storage.NewFileStore(cfg.MediaDir, "/media")
	if err != nil {
		return nil, err
	}

	recipeRepo := repository.NewRecipeRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	shoppingRepo := repository.NewShoppingRepository(db)
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)

	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, relationRepo, images)
	relationService := service.NewRelationService(relationRepo, recipeRepo, userRepo)
	shoppingService := service.NewShoppingService(shoppingRepo, cfg.ShoppingListHeader)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService, relationService, shoppingService, cfg)
	userHandler := handler.NewUserHandler(userRepo, relationService, cfg)
	tagHandler := handler.NewTagHandler(tagRepo)
	ingredientHandler := handler.NewIngredientHandler(ingredientRepo)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/tags", tagHandler.List)
		r.Get("/tags/{id}", tagHandler.Get)
		r.Get("/ingredients", ingredientHandler.List)
		r.Get("/ingredients/{id}", ingredientHandler.Get)

		// Readable anonymously, annotated when a token is present
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg))
			r.Get("/recipes", recipeHandler.List)
			r.Get("/recipes/{id}", recipeHandler.Get)
			r.Get("/users/{id}", userHandler.Get)
		})

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg))

			r.Get("/users/me", userHandler.Me)
			r.Get("/users/subscriptions", userHandler.Subscriptions)
			r.Post("/users/{id}/subscribe", userHandler.Subscribe)
			r.Delete("/users/{id}/subscribe", userHandler.Unsubscribe)

			r.Post("/recipes", recipeHandler.Create)
			r.Patch("/recipes/{id}", recipeHandler.Update)
			r.Delete("/recipes/{id}", recipeHandler.Delete)

			r.Post("/recipes/{id}/favorite", recipeHandler.Favorite)
			r.Delete("/recipes/{id}/favorite", recipeHandler.Unfavorite)
			r.Post("/recipes/{id}/shopping_cart", recipeHandler.AddToCart)
			r.Delete("/recipes/{id}/shopping_cart", recipeHandler.RemoveFromCart)

			r.Get("/recipes/download_shopping_cart", recipeHandler.DownloadShoppingCart)
		})
	})

	// Uploaded recipe images
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir)))
	r.Get("/media/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	return r, nil
}
