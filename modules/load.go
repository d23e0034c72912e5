package modules

import (
	"github.com/iota-uz/campus-sdk/modules/core"
	"github.com/iota-uz/campus-sdk/modules/requests"
	"github.com/iota-uz/campus-sdk/pkg/application"
)

// BuiltInModules is the load order: core first, since requests depends on
// its identity directory and migrations.
var BuiltInModules = []application.Module{
	core.NewModule(),
	requests.NewModule(),
}
