package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := E(tt.code, "Test.Op", "boom", nil)
		if got := HTTPStatus(err); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestHTTPStatusSentinelFallback(t *testing.T) {
	if got := HTTPStatus(fmt.Errorf("load: %w", ErrNotFound)); got != http.StatusNotFound {
		t.Errorf("got %d", got)
	}
	if got := HTTPStatus(fmt.Errorf("save: %w", ErrDuplicate)); got != http.StatusConflict {
		t.Errorf("got %d", got)
	}
	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("got %d", got)
	}
}

func TestIsCodeUnwrapsWrappedErrors(t *testing.T) {
	inner := E(CodeNotFound, "Repo.Get", "missing", nil)
	wrapped := fmt.Errorf("service: %w", inner)
	if !IsCode(wrapped, CodeNotFound) {
		t.Error("IsCode should see through wrapping")
	}
	if IsCode(wrapped, CodeConflict) {
		t.Error("IsCode matched wrong code")
	}
}

func TestAppErrorMessageForms(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := E(CodeUnavailable, "SessionService.Start", "store unreachable", cause)
	want := "SessionService.Start: store unreachable: dial tcp: refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("err = %v, want ErrPasswordTooShort", err)
	}

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Errorf("CheckPassword rejected the right password: %v", err)
	}
	if err := CheckPassword(hash, "wrong horse"); err == nil {
		t.Error("CheckPassword accepted the wrong password")
	}
}
