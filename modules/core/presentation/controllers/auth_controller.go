package controllers

import (
	"net/http"
	"time"

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

type AuthController struct {
	app         application.Application
	authService *services.AuthService
	userService *services.UserService
	basePath    string
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:         app,
		authService: app.Service(&services.AuthService{}).(*services.AuthService),
		userService: app.Service(&services.UserService{}).(*services.UserService),
		basePath:    "/core/api/auth",
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(c.app.Middleware()...)
	router.HandleFunc("/register", c.register).Methods(http.MethodPost)
	router.HandleFunc("/login", c.login).Methods(http.MethodPost)
	router.HandleFunc("/forgot-password", c.forgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password", c.resetPassword).Methods(http.MethodPost)

	authed := r.PathPrefix(c.basePath).Subrouter()
	authed.Use(c.app.Middleware()...)
	authed.Use(coremiddleware.RequireAuth())
	authed.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", c.me).Methods(http.MethodGet)
	authed.HandleFunc("/change-password", c.changePassword).Methods(http.MethodPost)
}

type registerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	IDNumber   string `json:"id_number"`
	Phone      string `json:"phone_number"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	dto := &user.CreateDTO{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		IDNumber:   body.IDNumber,
		Phone:      body.Phone,
		Password:   body.Password,
		Role:       body.Role,
		Department: body.Department,
	}
	if errs, ok := dto.Ok(); !ok {
		httpapi.WriteError(w, r, errs)
		return
	}
	created, err := c.userService.Register(r.Context(), dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "הרשמה בוצעה בהצלחה",
		"user":    viewmodels.UserFromEntity(created),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	u, sess, err := c.authService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	http.SetCookie(w, c.authService.Cookie(sess))
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "התחברת בהצלחה",
		"user":    viewmodels.UserFromEntity(u),
	})
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	cookie, err := r.Cookie(conf.SidCookieKey)
	if err == nil && cookie.Value != "" {
		if err := c.authService.Logout(r.Context(), cookie.Value); err != nil {
			httpapi.WriteError(w, r, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{"message": "התנתקת בהצלחה"})
}

func (c *AuthController) me(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, viewmodels.UserFromEntity(u))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (c *AuthController) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body forgotPasswordRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := c.userService.RequestPasswordReset(r.Context(), body.Email); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "קישור לאיפוס סיסמה נשלח לאימייל",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (c *AuthController) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body resetPasswordRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := c.userService.ResetPassword(r.Context(), body.Token, body.NewPassword); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "הסיסמה אופסה בהצלחה",
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *AuthController) changePassword(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	var body changePasswordRequest
	if err := httpapi.Decode(r, &body); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := c.userService.ChangePassword(r.Context(), u.ID(), body.OldPassword, body.NewPassword); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "הסיסמה שונתה בהצלחה",
	})
}
