package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/nicechess-go/internal/chess"
)

// These tests exercise the success paths; a failing assertion would fail
// this test itself.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, 42, 42, "value should be %d", 42)
}

func TestAssertErrors_Success(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertNoError(t, nil)
	AssertError(t, sentinel, "expected error from %s", "operation")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
}

func TestAssertBooleansAndNil_Success(t *testing.T) {
	var p *int
	AssertTrue(t, true)
	AssertFalse(t, false)
	AssertNil(t, nil)
	AssertNil(t, p)
	AssertNotNil(t, &struct{}{})
	AssertContains(t, "hello world", "world")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"plain string", []interface{}{"msg"}, "msg"},
		{"format", []interface{}{"ply %d", 3}, "ply 3"},
		{"non-string", []interface{}{42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveStrings(t *testing.T) {
	moves := []chess.Move{
		MustParseMove(t, "g1f3"),
		MustParseMove(t, "e7e8q"),
		MustParseMove(t, "a2a4"),
	}
	AssertEqual(t, MoveStrings(moves), []string{"a2a4", "e7e8q", "g1f3"})
}
