package pkg

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if !strings.Contains(appErr.Error(), "connection reset") {
		t.Fatalf("unexpected message %q", appErr.Error())
	}
	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Details != nil {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestAppError_WithDetails(t *testing.T) {
	base := NewDomainErrorSimple("BELOW_MINIMUM_CHARGE", "Total is below the minimum charge", http.StatusUnprocessableEntity)
	detailed := base.WithDetails(map[string]any{"minimum": "2.00"})

	if base.Details != nil {
		t.Fatalf("WithDetails must not modify the receiver")
	}
	if detailed.ToHTTPError().Details["minimum"] != "2.00" || detailed.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected detailed error %+v", detailed)
	}
}
