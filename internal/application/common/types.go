package common

import (
	"github.com/andrescamacho/colony-go/internal/application/logging"
	"github.com/andrescamacho/colony-go/internal/application/mediator"
)

// Mediator types re-exported so handlers only import common
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

type Logger = logging.Logger

var (
	NewMediator       = mediator.NewMediator
	WithLogger        = logging.WithLogger
	LoggerFromContext = logging.LoggerFromContext
)
