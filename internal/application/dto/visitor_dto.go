package dto

import "time"

// CreateVisitorRequest entrada para registrar la entrada de un visitante.
type CreateVisitorRequest struct {
	Name   string `json:"name" validate:"required,max=100" msg:"required=Name is required;max=Name must be less than 100 characters"`
	Mobile string `json:"mobile" validate:"mobile" msg:"mobile=Please enter a valid 10-digit mobile number"`
}

// VisitorResponse salida de un visitante. LogoutTime es null mientras sigue activo.
type VisitorResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Mobile     string     `json:"mobile"`
	LoginTime  time.Time  `json:"loginTime"`
	LogoutTime *time.Time `json:"logoutTime"`
}

// VisitorStatsResponse totales del registro.
type VisitorStatsResponse struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}
