package constants

import (
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	TxKey        contextKey = "tx"
	PoolKey      contextKey = "pool"
	LoggerKey    contextKey = "logger"
	RequestStart contextKey = "request-start"
)

// Validate is the shared validator instance used by DTOs across modules.
var Validate = validator.New(validator.WithRequiredStructEnabled())
