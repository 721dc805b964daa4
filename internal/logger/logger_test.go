package logger

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func TestNewSetsStackMarshaler(t *testing.T) {
	_ = New("test-service")
	if zerolog.ErrorStackMarshaler == nil {
		t.Fatalf("expected ErrorStackMarshaler to be set")
	}
	// Must handle both wrapped and plain errors without panicking.
	if out := zerolog.ErrorStackMarshaler(errors.New("with stack")); out == nil {
		t.Fatalf("expected stack output for pkg/errors error")
	}
	plain := zerolog.ErrorStackMarshaler(errTest)
	if plain == nil {
		t.Fatalf("expected stack output for plain error")
	}
}

var errTest = plainError("plain")

type plainError string

func (e plainError) Error() string { return string(e) }
