package handler

import "github.com/petconnect/activities-api/internal/core/domain"

func toActivityResponse(a domain.Activity) activityResponse {
	enrollments := make([]enrollmentResponse, len(a.Enrollments))
	for i, e := range a.Enrollments {
		enrollments[i] = enrollmentResponse{UsuarioID: e.AccountID, Hora: e.SignupTime}
	}
	return activityResponse{
		ID:                a.ID,
		Nombre:            a.Name,
		Descripcion:       a.Description,
		Plazas:            a.Capacity,
		FechaHora:         a.ScheduledAt.UTC(),
		PersonasApuntadas: enrollments,
	}
}

func toActivityList(activities []domain.Activity) []activityResponse {
	out := make([]activityResponse, len(activities))
	for i, a := range activities {
		out[i] = toActivityResponse(a)
	}
	return out
}
