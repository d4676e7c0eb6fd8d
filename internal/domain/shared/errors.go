package shared

import (
	"errors"
	"fmt"
)

// Domain-state errors. They are returned from inside a unit of work, which
// rolls the whole operation back; callers match them with errors.Is.
var (
	ErrColonyNotFound         = errors.New("colony not found")
	ErrColonyAlreadyExists    = errors.New("colony already exists for this user on this server")
	ErrSettlerNotFound        = errors.New("settler not found")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrInvalidAssignmentState = errors.New("invalid assignment state")
	ErrSettlerNotIdle         = errors.New("settler is not idle")
	ErrSettlerNotInColony     = errors.New("settler does not belong to this colony")
	ErrInsufficientEnergy     = errors.New("insufficient settler energy")
	ErrDependencyUnmet        = errors.New("assignment dependency not unlocked")
	ErrInsufficientMaterials  = errors.New("insufficient materials")
	ErrInventoryFull          = errors.New("colony inventory is full")
	ErrNoFreeCarrySlot        = errors.New("no free carry slot")
	ErrCarryWeightExceeded    = errors.New("carrying capacity exceeded")
	ErrItemNotCarried         = errors.New("item not carried")
	ErrItemNotInInventory     = errors.New("item not in colony inventory")
	ErrNotCandidate           = errors.New("settler is not an onboarding candidate")
	ErrOnboardingComplete     = errors.New("colony onboarding already completed")
	ErrTileNotFound           = errors.New("map tile not found")
	ErrTileAlreadyExplored    = errors.New("map tile already explored")
	ErrDuplicateIndex         = errors.New("spiral index already taken")
	ErrPlacementExhausted     = errors.New("could not place colony after retries")
)

// DomainError wraps a sentinel with a human readable message
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewDomainError creates a DomainError of the given kind
func NewDomainError(kind error, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InsufficientEnergyError reports how much energy a task needs versus what the settler has
type InsufficientEnergyError struct {
	Required  float64
	Available float64
}

func (e *InsufficientEnergyError) Error() string {
	return fmt.Sprintf("insufficient settler energy: need %.1f, have %.1f", e.Required, e.Available)
}

func (e *InsufficientEnergyError) Unwrap() error {
	return ErrInsufficientEnergy
}

// InvalidStateError reports an assignment transition attempted from the wrong state
type InvalidStateError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s assignment in %s state", e.Attempted, e.Current)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidAssignmentState
}

// ValidationError is raised before any unit of work is opened
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a request validation failure
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
