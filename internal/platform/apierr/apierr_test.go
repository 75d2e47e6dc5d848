package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("settle: %w", Conflict("Payment Already Exists"))
	if got := KindOf(err); got != KindConflict {
		t.Fatalf("kind: want=%q got=%q", KindConflict, got)
	}
	if !Is(err, KindConflict) {
		t.Fatalf("Is: expected conflict")
	}
	if err.Error() != "settle: Payment Already Exists" {
		t.Fatalf("message: got=%q", err.Error())
	}
}

func TestKindOfUntypedIsInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("kind: want=%q got=%q", KindInternal, got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("nil kind: want empty got=%q", got)
	}
}

func TestNewDerivesKindFromStatus(t *testing.T) {
	cases := map[int]Kind{
		http.StatusUnauthorized:        KindUnauthenticated,
		http.StatusForbidden:           KindForbidden,
		http.StatusNotFound:            KindNotFound,
		http.StatusBadRequest:          KindInvalidArgument,
		http.StatusInternalServerError: KindInternal,
	}
	for status, want := range cases {
		if got := New(status, "x", nil).Kind; got != want {
			t.Fatalf("status %d: want=%q got=%q", status, want, got)
		}
	}
}
