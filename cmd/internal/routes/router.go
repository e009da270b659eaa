package routes

import (
	"clubcal/cmd/internal/metrics"
	"clubcal/cmd/internal/utils"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Feed        *DefaultFeedRoute
	Preferences *DefaultPreferencesRoute
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	JWTSecret   []byte
}

// Echo builds the HTTP server with every route registered.
func (r *Router) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if r.Metrics != nil {
		e.Use(r.Metrics.Middleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	if r.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{})))
	}

	// Calendar feed, public and addressed by token
	e.GET("/feed/:feedId", r.Feed.GetFeed)
	e.HEAD("/feed/:feedId", r.Feed.GetFeed)

	// Feed settings of the authenticated user
	api := e.Group("/api/feed", utils.JWTAuth(r.JWTSecret))
	api.GET("/preferences", r.Preferences.GetPreferences)
	api.PUT("/preferences", r.Preferences.UpdatePreferences)
	api.GET("/url", r.Preferences.GetFeedURL)
	api.POST("/rotate", r.Preferences.RotateFeedID)

	return e
}
