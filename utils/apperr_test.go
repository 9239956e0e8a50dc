package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAppErrorIsMatchesSentinel(t *testing.T) {
	wrapped := ErrValidation.WithErr(fmt.Errorf("units out of range")).WithMessage("units must be between 1 and 100")
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped validation error must still match its sentinel")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Error("validation error must not match a different sentinel")
	}
}

func TestAppErrorCopiesDoNotMutateSentinel(t *testing.T) {
	_ = ErrNotFound.WithMessage("Investment not found")
	if ErrNotFound.Message != "Record not found" {
		t.Errorf("sentinel mutated: %q", ErrNotFound.Message)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrAuthentication, http.StatusUnauthorized},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{ErrGatewayConfig, http.StatusInternalServerError},
		{ErrUpstream, http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, c.err)
		if rr.Code != c.status {
			t.Errorf("WriteError(%v) status = %d, want %d", c.err, rr.Code, c.status)
		}
		var body APIResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("non-JSON error body: %v", err)
		}
		if body.Success {
			t.Error("error body must report success=false")
		}
	}
}

func TestWriteErrorDoesNotLeakCause(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, ErrUpstream.WithErr(errors.New("dial tcp 10.0.0.5:3306: connection refused")))
	if got := rr.Body.String(); strings.Contains(got, "10.0.0.5") || strings.Contains(got, "3306") {
		t.Errorf("response leaked the underlying cause: %s", got)
	}
}
