package controllers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	coremiddleware "github.com/iota-uz/campus-sdk/modules/core/presentation/middleware"
	"github.com/iota-uz/campus-sdk/modules/core/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/httpapi"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var errNoFile = serrors.NewError("FILE_REQUIRED", "לא צורף קובץ")

type UploadsController struct {
	app           application.Application
	uploadService *services.UploadService
	basePath      string
}

func NewUploadsController(app application.Application) application.Controller {
	return &UploadsController{
		app:           app,
		uploadService: app.Service(&services.UploadService{}).(*services.UploadService),
		basePath:      "/core/api/uploads",
	}
}

func (c *UploadsController) Key() string {
	return c.basePath
}

func (c *UploadsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(coremiddleware.RequireAuth())
	router.HandleFunc("", c.create).Methods(http.MethodPost)
}

func (c *UploadsController) create(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		httpapi.WriteError(w, r, errNoFile)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteError(w, r, errNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, conf.MaxUploadSize))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	mimetype := header.Header.Get("Content-Type")
	created, err := c.uploadService.Store(r.Context(), header.Filename, mimetype, u.ID(), content)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusCreated, map[string]interface{}{
		"id":   created.ID.String(),
		"path": created.Path,
		"name": created.Name,
		"size": created.Size,
	})
}
