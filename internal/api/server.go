package api

import (
	"github.com/RoyceAzure/lab/ristorante/internal/api/handler"
)

type Server struct {
	MenuHandler     *handler.MenuHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	FavoriteHandler *handler.FavoriteHandler
}

func NewServer(menuHandler *handler.MenuHandler, cartHandler *handler.CartHandler, orderHandler *handler.OrderHandler, favoriteHandler *handler.FavoriteHandler) *Server {
	return &Server{
		MenuHandler:     menuHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		FavoriteHandler: favoriteHandler,
	}
}
