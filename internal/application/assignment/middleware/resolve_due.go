package middleware

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/application/mediator"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// ColonyLookup finds the colony a request is scoped to
type ColonyLookup struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	assignments assignment.Repository
	settlers    settler.Repository
}

func NewColonyLookup(uow common.UnitOfWork, colonies colony.Repository, assignments assignment.Repository, settlers settler.Repository) *ColonyLookup {
	return &ColonyLookup{
		uow:         uow,
		colonies:    colonies,
		assignments: assignments,
		settlers:    settlers,
	}
}

// ResolveDueMiddleware completes a colony's due assignments before any
// request scoped to that colony runs, so handlers always see settled state.
//
// The colony is taken from the request's ColonyID field, or derived from its
// AssignmentID, SettlerID, or UserID and ServerID fields. Requests that name
// none of these pass straight through.
func ResolveDueMiddleware(lookup *ColonyLookup, completion *services.CompletionService, clock shared.Clock) mediator.Middleware {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := request.(*types.CompleteDueAssignmentsCommand); ok {
			return next(ctx, request)
		}

		colonyID, err := lookup.colonyFor(ctx, request)
		if err != nil {
			return nil, err
		}
		if colonyID == "" {
			return next(ctx, request)
		}

		if _, err := completion.CompleteDue(ctx, colonyID, clock.Now()); err != nil {
			return nil, fmt.Errorf("failed to resolve due assignments: %w", err)
		}
		return next(ctx, request)
	}
}

// colonyFor returns "" when the request is not colony scoped or names an
// entity that does not exist; the handler reports the missing entity itself
func (l *ColonyLookup) colonyFor(ctx context.Context, request mediator.Request) (string, error) {
	fields := stringFields(request, "ColonyID", "AssignmentID", "SettlerID", "UserID", "ServerID")
	if fields["ColonyID"] != "" {
		return fields["ColonyID"], nil
	}

	var colonyID string
	err := l.uow.DoReadOnly(ctx, func(ctx context.Context) error {
		switch {
		case fields["AssignmentID"] != "":
			a, err := l.assignments.FindByID(ctx, fields["AssignmentID"])
			if err != nil {
				return err
			}
			colonyID = a.ColonyID()
		case fields["SettlerID"] != "":
			s, err := l.settlers.FindByID(ctx, fields["SettlerID"])
			if err != nil {
				return err
			}
			colonyID = s.ColonyID()
		case fields["UserID"] != "" && fields["ServerID"] != "":
			c, err := l.colonies.FindByUserAndServer(ctx, fields["UserID"], fields["ServerID"])
			if err != nil {
				return err
			}
			if c != nil {
				colonyID = c.ID()
			}
		}
		return nil
	})
	if errors.Is(err, shared.ErrAssignmentNotFound) || errors.Is(err, shared.ErrSettlerNotFound) {
		return "", nil
	}
	return colonyID, err
}

// stringFields reads the named string fields of a struct or pointer to struct
func stringFields(request mediator.Request, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	v := reflect.ValueOf(request)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}
	for _, name := range names {
		f := v.FieldByName(name)
		if f.IsValid() && f.Kind() == reflect.String {
			out[name] = f.String()
		}
	}
	return out
}
