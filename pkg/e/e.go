package e

import (
	"errors"
	"fmt"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNoImagery             = errors.New("no suitable imagery found")
	ErrProvider              = errors.New("imagery provider error")
	ErrProviderUninitialized = errors.New("earth engine is not initialized")
	ErrInternal              = errors.New("internal error")
)
