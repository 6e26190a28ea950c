package handler

// Request and response types for the credential endpoints. Field names
// follow the public JSON contract, which predates this implementation.

type registerRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2"`
	Apellidos string `json:"apellidos" validate:"required,min=2"`
	Email     string `json:"email"     validate:"required,email"`
	Clave     string `json:"clave"     validate:"required,min=6"`
	Clave2    string `json:"clave2"    validate:"required,eqfield=Clave"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Clave string `json:"clave" validate:"required"`
}

// messageResponse is the plain confirmation envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// accountSummary is the redacted account view returned on login. It never
// carries the email, secret, or hash.
type accountSummary struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Role   string `json:"role"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Usuario accountSummary `json:"usuario"`
}
