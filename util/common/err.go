// Package common holds small error helpers shared across blindhunter packages.
package common

import (
	"errors"
	"fmt"

	"github.com/blindhunter/blindhunter/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors, returning nil when all are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a recovered panic under msg. It must be deferred directly.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
