package dto

import "github.com/jhoicas/Visitas-api/pkg/validator"

// ErrorResponse cuerpo de error HTTP. Errors solo se incluye en fallos de validación.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}
