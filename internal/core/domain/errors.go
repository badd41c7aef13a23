package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the core wraps exactly one of them,
// so adapters can map failures with errors.Is without knowing the details.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrLookupFailed = errors.New("product lookup failed")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrInvalidDate      = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	ErrInvalidServings  = fmt.Errorf("%w: servings must be a finite number greater than zero", ErrValidation)
	ErrInvalidMeal      = fmt.Errorf("%w: meal must be breakfast, lunch, dinner or snacks", ErrValidation)
	ErrInvalidWeight    = fmt.Errorf("%w: weight must be a finite number greater than zero", ErrValidation)
	ErrInvalidNutrition = fmt.Errorf("%w: nutrition values must be finite and not negative", ErrValidation)
	ErrInvalidStat      = fmt.Errorf("%w: stat must be calories, protein, carbs or fat", ErrValidation)
	ErrInvalidWindow    = fmt.Errorf("%w: window must cover between 1 and 366 days", ErrValidation)
	ErrEntryNameEmpty   = fmt.Errorf("%w: food name cannot be empty", ErrValidation)
	ErrDateMismatch     = fmt.Errorf("%w: entry date does not match ledger date", ErrValidation)
	ErrEmptyBarcode     = fmt.Errorf("%w: barcode cannot be empty", ErrValidation)
	ErrEmptyQuery       = fmt.Errorf("%w: search query cannot be empty", ErrValidation)

	ErrEntryNotFound   = fmt.Errorf("food entry %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrKeyNotFound     = fmt.Errorf("storage key %w", ErrNotFound)
)

// PersistenceError decorates a storage failure with the key and operation
// that produced it. It matches ErrPersistence and unwraps to the driver error.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// LookupError is returned when the product service could not be reached or
// answered with something unusable. A product that simply does not exist is
// reported as not found instead.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("product lookup failed: %s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }
