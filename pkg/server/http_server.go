package server

import (
	"context"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/application"
)

type HTTPServer struct {
	log         *logrus.Logger
	middlewares []mux.MiddlewareFunc
	srv         *http.Server
}

func NewHTTPServer(log *logrus.Logger, middlewares []mux.MiddlewareFunc) *HTTPServer {
	return &HTTPServer{log: log, middlewares: middlewares}
}

func (s *HTTPServer) buildRouter(app application.Application) http.Handler {
	r := mux.NewRouter()
	r.Use(s.middlewares...)
	for _, controller := range app.Controllers() {
		controller.Register(r)
		s.log.WithField("controller", controller.Key()).Debug("registered controller")
	}
	r.NotFoundHandler = wrap(s.middlewares, http.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = wrap(s.middlewares, http.HandlerFunc(methodNotAllowed))
	return gziphandler.GzipHandler(r)
}

func (s *HTTPServer) Start(app application.Application, socketAddress string) error {
	s.srv = &http.Server{
		Addr:    socketAddress,
		Handler: s.buildRouter(app),
	}
	s.log.WithField("address", socketAddress).Info("http server listening")
	return s.srv.ListenAndServe()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// wrap applies the middleware chain to handlers mux does not route through
// Use, like the not-found handler.
func wrap(middlewares []mux.MiddlewareFunc, h http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"resource not found"}}`))
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"error":{"code":"METHOD_NOT_ALLOWED","message":"method not allowed"}}`))
}
