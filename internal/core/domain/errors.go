// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio comunes.
var (
	// Input errors
	ErrNoHosts       = errors.New("no valid hosts provided")
	ErrInvalidDomain = errors.New("invalid domain format")

	// Setup errors
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrInvalidTimeout     = errors.New("timeout must be at least 1 second")
	ErrInvalidFilterMode  = errors.New("invalid filter mode")
	ErrInvalidProfile     = errors.New("invalid source profile")
	ErrNoSourcesAvailable = errors.New("no sources available for run")

	// Source errors (clasificados, ver ErrorKind)
	ErrNoResults    = errors.New("source returned no results")
	ErrUnauthorized = errors.New("source rejected credentials")
	ErrMissingKeys  = errors.New("missing credentials")
	ErrTaskFailed   = errors.New("source task failed")
)

// ErrorKind clasifica los fallos de una fuente.
type ErrorKind string

const (
	KindNone       ErrorKind = "none"
	KindSource     ErrorKind = "source"
	KindAuth       ErrorKind = "auth"
	KindKey        ErrorKind = "key"
	KindTask       ErrorKind = "task"
	KindUnexpected ErrorKind = "unexpected"
)

// String retorna la representación string del tipo.
func (k ErrorKind) String() string {
	return string(k)
}

// SourceError indica que la fuente respondió sin datos útiles
// (cuerpo vacío, mal formado o sin resultados para el host).
type SourceError struct {
	Source string
	Host   string
	Cause  error
}

func NewSourceError(source, host string, cause error) *SourceError {
	return &SourceError{Source: source, Host: host, Cause: cause}
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: no results for %s: %v", e.Source, e.Host, e.Cause)
	}
	return fmt.Sprintf("%s: no results for %s", e.Source, e.Host)
}

func (e *SourceError) Unwrap() error { return e.Cause }

// Is permite errors.Is(err, ErrNoResults).
func (e *SourceError) Is(target error) bool { return target == ErrNoResults }

// AuthError indica que el proveedor rechazó la autenticación
// o aplicó un rate limit.
type AuthError struct {
	Source string
	Cause  error
}

func NewAuthError(source string, cause error) *AuthError {
	return &AuthError{Source: source, Cause: cause}
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: authentication failed: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("%s: authentication failed", e.Source)
}

func (e *AuthError) Unwrap() error { return e.Cause }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// KeyError indica que faltan credenciales requeridas. Se produce antes
// de cualquier I/O de red.
type KeyError struct {
	Source  string
	Missing []string
}

func NewKeyError(source string, missing ...string) *KeyError {
	return &KeyError{Source: source, Missing: missing}
}

func (e *KeyError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s: missing credentials", e.Source)
	}
	return fmt.Sprintf("%s: missing credentials (%s)", e.Source, strings.Join(e.Missing, ", "))
}

func (e *KeyError) Is(target error) bool { return target == ErrMissingKeys }

// TaskFailure indica que la unidad de trabajo terminó de forma anormal
// (panic o cancelación) antes de producir un resultado.
type TaskFailure struct {
	Source string
	Host   string
	Cause  error
}

func NewTaskFailure(source, host string, cause error) *TaskFailure {
	return &TaskFailure{Source: source, Host: host, Cause: cause}
}

func (e *TaskFailure) Error() string {
	return fmt.Sprintf("%s: task for %s failed: %v", e.Source, e.Host, e.Cause)
}

func (e *TaskFailure) Unwrap() error { return e.Cause }

func (e *TaskFailure) Is(target error) bool { return target == ErrTaskFailed }

// Classify retorna el ErrorKind de un error devuelto por una fuente.
func Classify(err error) ErrorKind {
	var (
		srcErr  *SourceError
		authErr *AuthError
		keyErr  *KeyError
		taskErr *TaskFailure
	)

	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &keyErr):
		return KindKey
	case errors.As(err, &authErr):
		return KindAuth
	case errors.As(err, &taskErr):
		return KindTask
	case errors.As(err, &srcErr):
		return KindSource
	default:
		return KindUnexpected
	}
}

// MissingKeys retorna las variables faltantes si err es un KeyError.
func MissingKeys(err error) []string {
	var keyErr *KeyError
	if errors.As(err, &keyErr) {
		return keyErr.Missing
	}
	return nil
}
