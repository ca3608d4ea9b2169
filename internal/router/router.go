package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-parts-market/internal/config"
	"go-parts-market/internal/handler"
	"go-parts-market/internal/middleware"
	"go-parts-market/internal/websocket"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Product        *handler.ProductHandler
	Catalog        *handler.CatalogHandler
	Vehicle        *handler.VehicleHandler
	Garage         *handler.GarageHandler
	Message        *handler.MessageHandler
	Recommendation *handler.RecommendationHandler
	Health         *handler.HealthHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	h Handlers,
	hub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)

	// Websocket upgrade cannot run under the timeout handler; long-lived
	// connections are not requests.
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(hub, w, req)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/users", func(users chi.Router) {
			users.Get("/{id}", h.User.Get)
			users.With(authMiddleware.RequireAuth).Put("/{id}", h.User.Update)
			users.Get("/{id}/products", h.User.Products)
			users.Get("/{id}/reviews", h.User.Reviews)
			users.Get("/{id}/stats", h.User.Stats)
			users.Get("/{id}/rating", h.User.Rating)
		})

		api.Route("/products", func(products chi.Router) {
			products.Get("/", h.Product.List)
			products.Get("/search", h.Product.Search)
			products.Get("/{id}", h.Product.Get)
			products.With(authMiddleware.RequireAuth).Post("/", h.Product.Create)
			products.With(authMiddleware.RequireAuth).Put("/{id}", h.Product.Update)
			products.With(authMiddleware.RequireAuth).Delete("/{id}", h.Product.Delete)
		})

		api.Route("/categories", func(categories chi.Router) {
			categories.Get("/", h.Catalog.Categories)
			categories.Get("/{id}", h.Catalog.Category)
			categories.Get("/{id}/products", h.Product.ByCategory)
		})

		api.Route("/locations", func(locations chi.Router) {
			locations.Get("/countries", h.Catalog.Countries)
			locations.Get("/states/{countryId}", h.Catalog.States)
			locations.Get("/cities/search", h.Catalog.SearchCities)
			locations.Get("/cities/{stateId}", h.Catalog.Cities)
		})

		api.Route("/vehicles", func(vehicles chi.Router) {
			vehicles.Get("/types", h.Vehicle.Types)
			vehicles.Get("/makes/{typeId}", h.Vehicle.Makes)
			vehicles.Get("/models/{makeId}", h.Vehicle.Models)
			vehicles.Get("/submodels/{modelId}", h.Vehicle.Submodels)
			vehicles.With(authMiddleware.RequireAuth).Post("/types", h.Vehicle.AddType)
			vehicles.With(authMiddleware.RequireAuth).Post("/makes/{typeId}", h.Vehicle.AddMake)
			vehicles.With(authMiddleware.RequireAuth).Post("/models/{makeId}", h.Vehicle.AddModel)
			vehicles.With(authMiddleware.RequireAuth).Post("/submodels/{modelId}", h.Vehicle.AddSubmodel)
		})

		api.Route("/garage", func(garage chi.Router) {
			garage.Get("/{userId}", h.Garage.List)
			garage.Get("/{userId}/primary", h.Garage.Primary)
			garage.With(authMiddleware.RequireAuth).Post("/{userId}", h.Garage.Add)
			garage.With(authMiddleware.RequireAuth).Put("/{userId}/{itemId}", h.Garage.Update)
			garage.With(authMiddleware.RequireAuth).Delete("/{userId}/{itemId}", h.Garage.Remove)
			garage.With(authMiddleware.RequireAuth).Put("/{userId}/{itemId}/primary", h.Garage.SetPrimary)
		})

		api.Route("/messages", func(messages chi.Router) {
			messages.Use(authMiddleware.RequireAuth)
			messages.Get("/product/{productId}", h.Message.Thread)
			messages.Post("/", h.Message.Send)
			messages.Put("/{id}/read", h.Message.MarkRead)
		})

		api.With(authMiddleware.RequireAuth).Get("/parts", h.Product.CompatibleParts)

		api.Route("/recommendations", func(recs chi.Router) {
			recs.Use(authMiddleware.RequireAuth)
			recs.Post("/interaction", h.Recommendation.RecordInteraction)
			recs.Get("/personalized", h.Recommendation.Personalized)
			recs.Put("/preferences", h.Recommendation.UpdatePreferences)
			recs.Get("/preferences", h.Recommendation.Preferences)
		})
	})

	return r
}
