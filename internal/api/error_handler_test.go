package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/petconnect/activities-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/actividades/inscribir", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "El correo ya está registrado"},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, "Usuario no encontrado"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Contraseña incorrecta"},
		{"activity not found", domain.ErrActivityNotFound, http.StatusNotFound, "Actividad no encontrada"},
		{"already enrolled", domain.ErrAlreadyEnrolled, http.StatusConflict, "Ya estás inscrito en esta actividad"},
		{"activity full", domain.ErrActivityFull, http.StatusConflict, "No quedan plazas en esta actividad"},
		{"unavailable", domain.ErrUnavailable, http.StatusServiceUnavailable, "Servicio no disponible"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, code)
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
			if _, ok := body["detalles"]; ok {
				t.Fatalf("detalles must be omitted for non-validation errors: %v", body)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("updating document"), domain.ErrAlreadyEnrolled)
	code, body := renderError(t, wrapped)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if body["message"] != "Ya estás inscrito en esta actividad" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_ValidationDetail(t *testing.T) {
	verr := domain.NewValidationError().
		Add("email", "Email inválido").
		Add("clave", "Campo obligatorio")

	code, body := renderError(t, verr)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["message"] != "Error de validación" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	detalles, ok := body["detalles"].(map[string]any)
	if !ok {
		t.Fatalf("expected detalles object, got %v", body)
	}
	if detalles["email"] != "Email inválido" || detalles["clave"] != "Campo obligatorio" {
		t.Fatalf("unexpected detalles: %v", detalles)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Falta el token de autenticación"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["message"] != "Falta el token de autenticación" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, body := renderError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "Error del servidor" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	// The real cause stays in the logs.
	for _, v := range body {
		if s, ok := v.(string); ok && s == "connection reset by peer" {
			t.Fatalf("internal error detail leaked to the client: %v", body)
		}
	}
}
