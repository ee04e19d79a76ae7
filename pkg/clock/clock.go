package clock

import (
	"sync"
	"time"
)

// Clock permite inyectar el tiempo en repositorios y casos de uso.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem devuelve un reloj basado en time.Now (UTC).
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed devuelve siempre el mismo instante; Set y Advance lo mueven (útil en tests).
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed construye un reloj fijo en t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set fija el instante actual.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t.UTC()
	f.mu.Unlock()
}

// Advance avanza el reloj d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
