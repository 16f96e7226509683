// internal/core/domain/errors_test.go
package domain

import (
	"errors"
	"fmt"
	"testing"

	"vita/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"source error", NewSourceError("crtsh", "example.com", nil), KindSource},
		{"auth error", NewAuthError("chaos", errors.New("401")), KindAuth},
		{"key error", NewKeyError("chaos", "CHAOS_KEY"), KindKey},
		{"task failure", NewTaskFailure("crtsh", "example.com", errors.New("panic")), KindTask},
		{"wrapped key error", fmt.Errorf("build: %w", NewKeyError("c99", "C99_KEY")), KindKey},
		{"plain error", errors.New("boom"), KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Classify(tt.err), tt.want, "kind")
		})
	}
}

func TestClassifiedErrors_Is(t *testing.T) {
	testutil.AssertTrue(t, errors.Is(NewSourceError("a", "b", nil), ErrNoResults), "source error is ErrNoResults")
	testutil.AssertTrue(t, errors.Is(NewAuthError("a", nil), ErrUnauthorized), "auth error is ErrUnauthorized")
	testutil.AssertTrue(t, errors.Is(NewKeyError("a"), ErrMissingKeys), "key error is ErrMissingKeys")
	testutil.AssertTrue(t, errors.Is(NewTaskFailure("a", "b", errors.New("x")), ErrTaskFailed), "task failure is ErrTaskFailed")
	testutil.AssertFalse(t, errors.Is(NewSourceError("a", "b", nil), ErrUnauthorized), "source error is not auth")
}

func TestClassifiedErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSourceError("wayback", "example.com", cause)

	testutil.AssertTrue(t, errors.Is(err, cause), "cause reachable through Unwrap")
	testutil.AssertContains(t, err.Error(), "wayback", "message names the source")
	testutil.AssertContains(t, err.Error(), "example.com", "message names the host")
}

func TestKeyError_Message(t *testing.T) {
	err := NewKeyError("passivetotal", "PASSIVETOTAL_KEY", "PASSIVETOTAL_SECRET")

	testutil.AssertContains(t, err.Error(), "PASSIVETOTAL_KEY, PASSIVETOTAL_SECRET", "missing vars listed")
	testutil.AssertLen(t, MissingKeys(err), 2, "missing keys")
	testutil.AssertLen(t, MissingKeys(errors.New("other")), 0, "no missing keys for other errors")
}
