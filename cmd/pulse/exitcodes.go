package main

import "fmt"

// Exit codes for the pulse CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1 // Generation, enrichment or I/O failed.
	ExitInvalidArgs = 2 // Unknown platform or hook, bad window, unreadable catalog.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
