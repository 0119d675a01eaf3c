package router

import (
	"github.com/RoyceAzure/lab/ristorante/internal/api"
	m "github.com/RoyceAzure/lab/ristorante/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", server.MenuHandler.GetMenu)
		r.Get("/menu/items/{itemID}", server.MenuHandler.GetItem)
		r.Get("/offers", server.MenuHandler.GetOffers)
		r.Get("/offers/promo/{code}", server.MenuHandler.GetOfferByPromoCode)
		r.Get("/locations", server.MenuHandler.GetLocations)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/items", server.CartHandler.AddToCart)
			r.Delete("/items/{cartItemID}", server.CartHandler.RemoveFromCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", server.OrderHandler.PlaceOrder)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{orderID}", server.OrderHandler.GetOrder)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", server.FavoriteHandler.ListFavorites)
			r.Post("/{itemID}/toggle", server.FavoriteHandler.ToggleFavorite)
		})
	})

	return r
}
