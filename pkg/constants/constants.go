package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	UserKey      ContextKey = "user"
	SessionKey   ContextKey = "session"
	ParamsKey    ContextKey = "params"
	AppKey       ContextKey = "app"
	RequestStart ContextKey = "requestStart"
)

var Validate = validator.New()
