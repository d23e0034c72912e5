package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/constants"
	"github.com/iota-uz/campus-sdk/pkg/middleware"
	"github.com/iota-uz/campus-sdk/pkg/server"
)

// Default assembles the HTTP server with the standard middleware stack.
// Order matters: the logger must run first so every later stage, including
// error responses, carries the request id.
func Default(conf *configuration.Configuration, app application.Application, log *logrus.Logger) *server.HTTPServer {
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(log),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, app.DB()),
		middleware.RequestParams(),
		middleware.Cors(conf.FrontendOrigin),
	}
	if conf.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(conf.RateLimit.GlobalRPS))
	}
	return server.NewHTTPServer(log, middlewares)
}
