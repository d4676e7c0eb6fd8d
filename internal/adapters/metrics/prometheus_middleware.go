package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/colony-go/internal/application/mediator"
)

// PrometheusMiddleware times every request and counts it by outcome. It is
// registered first so the time spent resolving due assignments is included.
// A nil collector turns it into a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		done := collector.trackInFlight(commandName)
		defer done()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err)

		return response, err
	}
}

// extractCommandName turns "*types.StartAssignmentCommand" into
// "StartAssignmentCommand"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
