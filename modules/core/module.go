package core

import (
	"github.com/iota-uz/campus-sdk/modules/core/handlers"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence"
	"github.com/iota-uz/campus-sdk/modules/core/presentation/controllers"
	coremiddleware "github.com/iota-uz/campus-sdk/modules/core/presentation/middleware"
	"github.com/iota-uz/campus-sdk/modules/core/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/mailer"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	userRepo := persistence.NewUserRepository()
	sessionRepo := persistence.NewSessionRepository()
	resetRepo := persistence.NewPasswordResetRepository()
	uploadRepo := persistence.NewUploadRepository()

	authService := services.NewAuthService(userRepo, sessionRepo, app.EventPublisher())
	userService := services.NewUserService(userRepo, sessionRepo, resetRepo, app.EventPublisher())
	uploadService := services.NewUploadService(uploadRepo, app.EventPublisher())

	app.RegisterServices(authService, userService, uploadService)
	app.RegisterMiddleware(coremiddleware.Authorize(authService))

	dispatcher := mailer.FromConfig(conf, app.Logger())
	handlers.RegisterMailHandlers(app.EventPublisher(), dispatcher, app.Logger())

	app.RegisterControllers(
		controllers.NewAuthController(app),
		controllers.NewUsersController(app),
		controllers.NewUploadsController(app),
	)
	app.Migrations().RegisterSchema(persistence.SchemaFS, "schema")
	return nil
}
