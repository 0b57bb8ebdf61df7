package errors

import (
	"strings"
	"testing"
)

func TestRangeError(t *testing.T) {
	err := &RangeError{Index: 2, Kind: "abbrev", Offset: 9, Length: 5, TextLen: 10}
	if !Is(err, ErrOutOfRange) {
		t.Error("RangeError must unwrap to ErrOutOfRange")
	}
	msg := err.Error()
	for _, part := range []string{"abbrev", "[9,14)", "10"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}
}

func TestRangeErrorAs(t *testing.T) {
	var wrapped error = Wrap(&RangeError{Index: 1}, "projecting line")
	var rangeErr *RangeError
	if !As(wrapped, &rangeErr) {
		t.Fatal("As failed through wrapping")
	}
	if rangeErr.Index != 1 {
		t.Errorf("expected index 1, got %d", rangeErr.Index)
	}
}

func TestUnknownKindError(t *testing.T) {
	err := &UnknownKindError{Kind: "marginalia", LineID: "tl_3"}
	if !Is(err, ErrUnknownKind) {
		t.Error("UnknownKindError must unwrap to ErrUnknownKind")
	}
	if !strings.Contains(err.Error(), "marginalia") || !strings.Contains(err.Error(), "tl_3") {
		t.Errorf("message missing context: %q", err.Error())
	}

	bare := &UnknownKindError{Kind: "marginalia"}
	if strings.Contains(bare.Error(), "line") {
		t.Errorf("bare error should omit the line: %q", bare.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("edition", "must be diplomatic or translation")
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError must unwrap to ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "edition") {
		t.Errorf("message missing field: %q", err.Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("PAGE-XML", "in.xml", "unexpected EOF")
	if !Is(err, ErrInvalidInput) {
		t.Error("ParseError must unwrap to ErrInvalidInput")
	}
	msg := err.Error()
	if !strings.Contains(msg, "PAGE-XML") || !strings.Contains(msg, "in.xml") {
		t.Errorf("message missing context: %q", msg)
	}
}

func TestIOError(t *testing.T) {
	underlying := ErrUnsupported
	err := NewIO("read", "/tmp/x", underlying)
	if !Is(err, underlying) {
		t.Error("IOError must unwrap to the underlying error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) must return nil")
	}
	err := Wrap(ErrOutOfRange, "line tl_1")
	if !Is(err, ErrOutOfRange) {
		t.Error("wrapped error lost its target")
	}
	if !strings.HasPrefix(err.Error(), "line tl_1: ") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "x %d", 1) != nil {
		t.Error("Wrapf(nil) must return nil")
	}
	err := Wrapf(ErrUnknownKind, "line %s", "tl_9")
	if !Is(err, ErrUnknownKind) {
		t.Error("wrapped error lost its target")
	}
}
