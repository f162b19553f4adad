package usecase

import (
	"errors"
	"fmt"

	"box-office/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrInvalidState   = errors.New("invalid state")
	ErrAmountMismatch = errors.New("amount does not match booking price")
	ErrCapacity       = errors.New("not enough capacity")
)

// ValidationError carries per-field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CapacityError reports a seat group, or the whole performance when
// SeatGroup is empty, without room for the requested tickets.
type CapacityError struct {
	SeatGroup string
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	where := e.SeatGroup
	if where == "" {
		where = "this performance"
	}
	return fmt.Sprintf("only %d seats remaining in %s but you have booked %d", e.Remaining, where, e.Requested)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", kind, raw, ErrValidation)
	}
	return id, nil
}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
