package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	coremiddleware "github.com/iota-uz/campus-sdk/modules/core/presentation/middleware"
	"github.com/iota-uz/campus-sdk/modules/requests/presentation/viewmodels"
	"github.com/iota-uz/campus-sdk/modules/requests/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/httpapi"
)

type NotificationsController struct {
	app                 application.Application
	notificationService *services.NotificationService
	basePath            string
}

func NewNotificationsController(app application.Application) application.Controller {
	return &NotificationsController{
		app:                 app,
		notificationService: app.Service(&services.NotificationService{}).(*services.NotificationService),
		basePath:            "/requests/api/notifications",
	}
}

func (c *NotificationsController) Key() string {
	return c.basePath
}

func (c *NotificationsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(coremiddleware.RequireAuth())
	router.HandleFunc("", c.listUnread).Methods(http.MethodGet)
	router.HandleFunc("/read", c.markAllRead).Methods(http.MethodPost)
}

func (c *NotificationsController) listUnread(w http.ResponseWriter, r *http.Request) {
	entities, err := c.notificationService.ListUnread(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"notifications": viewmodels.NotificationsFromEntities(entities),
	})
}

func (c *NotificationsController) markAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := c.notificationService.MarkAllRead(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "כל ההתראות סומנו כנקראו",
		"marked":  count,
	})
}
