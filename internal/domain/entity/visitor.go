package entity

import "time"

// Visitor representa una sesión de visita: entrada (login) y, opcionalmente, salida (logout).
type Visitor struct {
	ID         int64
	Name       string
	Mobile     string
	LoginTime  time.Time
	LogoutTime *time.Time // nil mientras el visitante sigue dentro
	Seq        uint64     // orden de inserción, desempata LoginTime iguales
}

// IsActive indica si el visitante aún no ha registrado su salida.
func (v *Visitor) IsActive() bool {
	return v.LogoutTime == nil
}

// Clone devuelve una copia independiente (incluido LogoutTime).
func (v *Visitor) Clone() *Visitor {
	if v == nil {
		return nil
	}
	c := *v
	if v.LogoutTime != nil {
		t := *v.LogoutTime
		c.LogoutTime = &t
	}
	return &c
}

// NewerThan indica si v debe listarse antes que o: login más reciente primero,
// y a igual login, la inserción posterior primero.
func (v *Visitor) NewerThan(o *Visitor) bool {
	if !v.LoginTime.Equal(o.LoginTime) {
		return v.LoginTime.After(o.LoginTime)
	}
	return v.Seq > o.Seq
}

// VisitorStats resume el estado del registro de visitas.
type VisitorStats struct {
	Total  int
	Active int
}
