package hwseed

import (
	"errors"
	"fmt"
)

// Sentinel errors. None of them is fatal: every operation that reports one
// has already degraded to a well-defined state.
var (
	// ErrInitialization is matched by [InitError]. It is returned by
	// [Seeder.Initialize] when the persisted record could not be read or
	// written and the seeder fell back to an in-memory record.
	ErrInitialization = errors.New("seed system initialization degraded")

	// ErrInvalidState is returned by [Seeder.SetUserSeed] in strict mode when
	// the seeder has not been initialized.
	ErrInvalidState = errors.New("seed system not initialized")

	// ErrInvalidArgument is returned when a caller-supplied value cannot be
	// interpreted, such as an unknown component name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRecordNotFound is returned by a [Store] that holds no record.
	ErrRecordNotFound = errors.New("seed record not found")

	// ErrCorruptRecord is returned when persisted bytes do not decode as a
	// record of the current layout.
	ErrCorruptRecord = errors.New("seed record corrupt or of unknown layout")

	// ErrNoIdentifiers is returned by [HardwareEntropy] when no host
	// identifier could be collected.
	ErrNoIdentifiers = errors.New("no hardware identifiers found")
)

// InitError records a degraded initialization.
// errors.Is(err, ErrInitialization) reports true for it.
type InitError struct {
	Op  string // "load" or "save"
	Err error  // underlying error
}

// Error returns a human-readable description of the degraded step.
func (e *InitError) Error() string {
	return fmt.Sprintf("seed initialization %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrInitialization].
func (e *InitError) Is(target error) bool {
	return target == ErrInitialization
}

// StoreError records a failed persistence operation.
// Use [errors.As] to extract the backend and operation from wrapped errors.
type StoreError struct {
	Backend string // backend name, e.g. "file", "sqlite", "s3"
	Op      string // "load", "save" or "clear"
	Err     error  // underlying error
}

// Error returns a human-readable description of the store failure.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// CommandError records a failed system command execution.
// Use [errors.As] to extract the command name from wrapped errors.
type CommandError struct {
	Command string // command name, e.g. "sysctl", "ioreg", "powershell"
	Err     error  // underlying error from exec
}

// Error returns a human-readable description of the command failure.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// SourceError records a failure while collecting one host identifier for
// [HardwareEntropy]. These errors appear in [EntropyReport.Errors].
type SourceError struct {
	Source string // source name, e.g. "cpu", "uuid", "disk"
	Err    error  // underlying error
}

// Error returns a human-readable description of the source failure.
func (e *SourceError) Error() string {
	return fmt.Sprintf("entropy source %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}
