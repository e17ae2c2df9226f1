package chomsky

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	err := Errorf(EmptyGrammar, "grammar %q has no productions", "G")
	if KindOf(err) != EmptyGrammar {
		t.Errorf("expected kind EmptyGrammar, got %s", KindOf(err))
	}
	wrapped := fmt.Errorf("while converting: %w", err)
	if KindOf(wrapped) != EmptyGrammar {
		t.Errorf("expected kind to survive wrapping, got %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, &Error{Kind: EmptyGrammar}) {
		t.Errorf("expected errors.Is to match on kind")
	}
	if errors.Is(wrapped, &Error{Kind: NameCollision}) {
		t.Errorf("expected errors.Is not to match a different kind")
	}
	if KindOf(errors.New("foreign")) != NoError {
		t.Errorf("foreign errors should have no kind")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(MalformedGrammar, nil, "nothing") != nil {
		t.Errorf("wrapping nil should yield nil")
	}
	cause := errors.New("start symbol undeclared")
	err := Wrap(MalformedGrammar, cause, "invalid grammar")
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be unwrappable")
	}
	if err.Error() != "MalformedGrammar: invalid grammar: start symbol undeclared" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestKindText(t *testing.T) {
	b, _ := LimitExceeded.MarshalText()
	if string(b) != "LimitExceeded" {
		t.Errorf("expected LimitExceeded, got %s", b)
	}
	if ErrorKind(42).String() != "ErrorKind(42)" {
		t.Errorf("unexpected name for unknown kind: %s", ErrorKind(42))
	}
}
