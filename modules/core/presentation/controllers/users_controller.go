package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	coremiddleware "github.com/iota-uz/campus-sdk/modules/core/presentation/middleware"
	"github.com/iota-uz/campus-sdk/modules/core/presentation/viewmodels"
	"github.com/iota-uz/campus-sdk/modules/core/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/httpapi"
)

type UsersController struct {
	app         application.Application
	userService *services.UserService
	basePath    string
}

func NewUsersController(app application.Application) application.Controller {
	return &UsersController{
		app:         app,
		userService: app.Service(&services.UserService{}).(*services.UserService),
		basePath:    "/core/api/users",
	}
}

func (c *UsersController) Key() string {
	return c.basePath
}

func (c *UsersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.Use(coremiddleware.RequireAuth())
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/reviewers", c.reviewers).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.update).Methods(http.MethodPut)

	admin := r.PathPrefix(c.basePath).Subrouter()
	admin.Use(c.app.Middleware()...)
	admin.Use(coremiddleware.RequireRoles(user.RoleAdmin))
	admin.HandleFunc("/{id}", c.delete).Methods(http.MethodDelete)
}

func (c *UsersController) findParams(r *http.Request) *user.FindParams {
	conf := configuration.Use()
	q := r.URL.Query()
	limit := conf.PageSize
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= conf.MaxPageSize {
			limit = n
		}
	}
	offset := 0
	if raw := q.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	params := &user.FindParams{
		Department: q.Get("department"),
		Limit:      limit,
		Offset:     offset,
	}
	if role, err := user.ParseRole(q.Get("role")); err == nil {
		params.Role = role
	}
	return params
}

func (c *UsersController) list(w http.ResponseWriter, r *http.Request) {
	params := c.findParams(r)
	entities, err := c.userService.GetPaginated(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	total, err := c.userService.Count(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"users": viewmodels.UsersFromEntities(entities),
		"total": total,
	})
}

// reviewers lists users that can be assigned to review a request.
func (c *UsersController) reviewers(w http.ResponseWriter, r *http.Request) {
	params := c.findParams(r)
	params.Role = user.RoleLecturer
	entities, err := c.userService.GetPaginated(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"users": viewmodels.UsersFromEntities(entities),
	})
}

func (c *UsersController) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, user.ErrNotFound)
		return
	}
	entity, err := c.userService.GetByID(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.UserFromEntity(entity))
}

type updateUserRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	IDNumber   string `json:"id_number"`
	Phone      string `json:"phone_number"`
	Department string `json:"department"`
}

func (c *UsersController) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, user.ErrNotFound)
		return
	}
	var body updateUserRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	dto := &user.UpdateDTO{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		IDNumber:   body.IDNumber,
		Phone:      body.Phone,
		Department: body.Department,
	}
	if errs, ok := dto.Ok(); !ok {
		httpapi.WriteError(w, r, errs)
		return
	}
	updated, err := c.userService.Update(r.Context(), id, dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.UserFromEntity(updated))
}

func (c *UsersController) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, user.ErrNotFound)
		return
	}
	actor, err := composables.UseUser(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if actor.ID() == id {
		httpapi.WriteError(w, r, composables.ErrForbidden)
		return
	}
	if err := c.userService.Delete(r.Context(), id); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "המשתמש נמחק בהצלחה",
	})
}
