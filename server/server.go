// Package server wires the HTTP API over the controller.
package server

import "github.com/gin-gonic/gin"

type Server struct {
	ctrl Controller
}

func New(ctrl Controller) *Server {
	return &Server{ctrl: ctrl}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/api/register", s.Register)

	api := r.Group("/api", s.RequireUser)
	api.GET("/dashboard", s.Dashboard)
	api.GET("/search", s.SearchPlants)

	api.GET("/rooms", s.ListRooms)
	api.POST("/rooms", s.CreateRoom)
	api.PUT("/rooms/:id", s.UpdateRoom)
	api.DELETE("/rooms/:id", s.DeleteRoom)
	api.GET("/rooms/:id/shelves", s.RoomShelves)

	api.POST("/plants", s.AddPlant)
	api.DELETE("/plants/:id", s.DeletePlant)
	api.POST("/plants/:id/water", s.WaterPlant)
	api.POST("/plants/:id/move", s.MovePlant)

	api.POST("/species", s.CreateSpecies)
	api.GET("/species/:id/care", s.SpeciesCare)

	r.GET("/ws", s.RequireUser, s.Events)

	return r
}
