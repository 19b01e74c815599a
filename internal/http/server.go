// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ridedispatch/internal/http/handlers"
	"ridedispatch/internal/http/middleware"
	"ridedispatch/internal/modules/driver"
	"ridedispatch/internal/modules/ride"
)

type ServerDeps struct {
	Rides   *ride.Service
	Drivers *driver.Store
	Logger  zerolog.Logger
}

type Server struct {
	rides   *handlers.RideHandler
	drivers *handlers.DriverHandler
	log     zerolog.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		rides:   handlers.NewRideHandler(deps.Rides),
		drivers: handlers.NewDriverHandler(deps.Drivers),
		log:     deps.Logger,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(s.log), middleware.Metrics())

	r.POST("/api/request-ride", s.rides.Create)
	r.GET("/api/rides/:id", s.rides.Get)
	r.POST("/api/register-driver", s.drivers.Register)
	r.GET("/api/available-drivers", s.drivers.Available)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
