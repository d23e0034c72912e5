package application

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

// Controller is a routable unit of the presentation layer. Key must be
// unique across modules; registering the same key twice replaces the
// previous controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature area (domain, persistence, services, controllers)
// into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Middleware() []mux.MiddlewareFunc
	Controllers() []Controller
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Migrations() *MigrationManager
}

func New(pool *pgxpool.Pool, publisher eventbus.EventBus, log *logrus.Logger) Application {
	return &application{
		pool:        pool,
		publisher:   publisher,
		log:         log,
		services:    make(map[reflect.Type]interface{}),
		controllers: make(map[string]Controller),
		migrations:  NewMigrationManager(pool, log),
	}
}

type application struct {
	pool        *pgxpool.Pool
	publisher   eventbus.EventBus
	log         *logrus.Logger
	middleware  []mux.MiddlewareFunc
	services    map[reflect.Type]interface{}
	controllers map[string]Controller
	migrations  *MigrationManager
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.publisher
}

func (app *application) Logger() *logrus.Logger {
	return app.log
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) Controllers() []Controller {
	keys := make([]string, 0, len(app.controllers))
	for k := range app.controllers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Controller, 0, len(keys))
	for _, k := range keys {
		out = append(out, app.controllers[k])
	}
	return out
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterServices(services ...interface{}) {
	for _, s := range services {
		app.services[reflect.TypeOf(s)] = s
	}
}

// Service returns the registered service whose type matches the given
// sample. Panics when the service was never registered, which is a wiring
// bug rather than a runtime condition.
func (app *application) Service(service interface{}) interface{} {
	svc, ok := app.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %s not found", reflect.TypeOf(service)))
	}
	return svc
}

func (app *application) Migrations() *MigrationManager {
	return app.migrations
}

// Load registers each module in order, then applies pending migrations.
func Load(ctx context.Context, app Application, modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(app); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
		app.Logger().WithField("module", m.Name()).Info("module registered")
	}
	return app.Migrations().Apply(ctx)
}
