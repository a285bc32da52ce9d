package errors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "tradejournal/internal/errors"
)

func TestStoreErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := apperrors.NewStoreError("trade", "save", "T-000001", cause)
	if !errors.Is(err, cause) {
		t.Error("StoreError does not unwrap to its cause")
	}
	want := "store error [trade] save T-000001: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTransitionErrorMessage(t *testing.T) {
	err := apperrors.NewTransitionError("T-000002", "CLOSED", "OPEN", "CLOSED is terminal")
	want := "transition error [T-000002] CLOSED -> OPEN: CLOSED is terminal"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var te *apperrors.TransitionError
	if !errors.As(error(err), &te) || te.To != "OPEN" {
		t.Error("TransitionError not recoverable with errors.As")
	}
}

func TestTransitionErrorWithoutTradeID(t *testing.T) {
	err := apperrors.NewTransitionError("", "DRAFT", "CLOSED", "no exit price")
	want := "transition error DRAFT -> CLOSED: no exit price"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestImportErrorMessage(t *testing.T) {
	err := apperrors.NewImportError(3, "instrument is required")
	want := "import error row 3: instrument is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	withField := &apperrors.ImportError{Row: 5, Field: "entry_date", Message: "unparseable", Err: fmt.Errorf("bad format")}
	want = "import error row 5 [entry_date]: unparseable: bad format"
	if withField.Error() != want {
		t.Errorf("Error() = %q, want %q", withField.Error(), want)
	}
	if !errors.Is(withField, withField.Err) {
		t.Error("ImportError does not unwrap to its cause")
	}
}
