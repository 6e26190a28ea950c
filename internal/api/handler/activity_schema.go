package handler

import "time"

type createActivityRequest struct {
	Nombre      string    `json:"nombre"      validate:"required"`
	Descripcion string    `json:"descripcion" validate:"required"`
	Plazas      int       `json:"plazas"      validate:"required,gt=0"`
	FechaHora   time.Time `json:"fechaHora"   validate:"required"`
}

type enrollRequest struct {
	ActividadID string `json:"actividadId" validate:"required"`
	UsuarioID   string `json:"usuarioId"   validate:"required"`
	// Hora is accepted for compatibility with older clients; the server
	// assigns the signup time itself and ignores this value.
	Hora string `json:"hora"`
}

// Response-only types owned by the transport layer, kept separate from the
// domain structs so the JSON contract is not coupled to internal changes.

type enrollmentResponse struct {
	UsuarioID string `json:"usuarioId"`
	Hora      string `json:"hora"`
}

type activityResponse struct {
	ID                string               `json:"id"`
	Nombre            string               `json:"nombre"`
	Descripcion       string               `json:"descripcion"`
	Plazas            int                  `json:"plazas"`
	FechaHora         time.Time            `json:"fechaHora"`
	PersonasApuntadas []enrollmentResponse `json:"personasApuntadas"`
}

type createActivityResponse struct {
	Message   string           `json:"message"`
	Actividad activityResponse `json:"actividad"`
}
