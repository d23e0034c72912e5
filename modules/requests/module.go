package requests

import (
	corepersistence "github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence"
	"github.com/iota-uz/campus-sdk/modules/requests/handlers"
	"github.com/iota-uz/campus-sdk/modules/requests/infrastructure/persistence"
	"github.com/iota-uz/campus-sdk/modules/requests/presentation/controllers"
	"github.com/iota-uz/campus-sdk/modules/requests/services"
	"github.com/iota-uz/campus-sdk/pkg/application"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/mailer"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "requests"
}

func (m *Module) Register(app application.Application) error {
	requestRepo := persistence.NewRequestRepository()
	commentRepo := persistence.NewCommentRepository()
	notificationRepo := persistence.NewNotificationRepository()
	userRepo := corepersistence.NewUserRepository()

	requestService := services.NewRequestService(requestRepo, userRepo, notificationRepo, app.EventPublisher())
	commentService := services.NewCommentService(commentRepo, requestRepo, notificationRepo, app.EventPublisher())
	notificationService := services.NewNotificationService(notificationRepo, app.EventPublisher())

	app.RegisterServices(requestService, commentService, notificationService)

	dispatcher := mailer.FromConfig(configuration.Use(), app.Logger())
	handlers.RegisterNotificationHandlers(app.EventPublisher(), app.DB(), userRepo, dispatcher, app.Logger())

	app.RegisterControllers(
		controllers.NewRequestsController(app),
		controllers.NewNotificationsController(app),
	)
	app.Migrations().RegisterSchema(persistence.SchemaFS, "schema")
	return nil
}
