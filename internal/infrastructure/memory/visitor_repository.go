package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Visitas-api/internal/domain/entity"
	"github.com/jhoicas/Visitas-api/internal/domain/repository"
	"github.com/jhoicas/Visitas-api/pkg/clock"
)

var _ repository.VisitorRepository = (*VisitorRepo)(nil)

// VisitorRepo implementación en memoria del puerto VisitorRepository.
// Es el almacén por defecto y el usado en tests; un único mutex hace atómicas
// la asignación de ID y la mutación del mapa.
type VisitorRepo struct {
	mu       sync.Mutex
	clock    clock.Clock
	nextID   int64
	seq      uint64
	visitors map[int64]*entity.Visitor
}

// NewVisitorRepository construye el almacén vacío; los IDs empiezan en 1.
func NewVisitorRepository(clk clock.Clock) *VisitorRepo {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &VisitorRepo{
		clock:    clk,
		nextID:   1,
		visitors: make(map[int64]*entity.Visitor),
	}
}

// Create registra la entrada de un visitante.
func (r *VisitorRepo) Create(_ context.Context, name, mobile string) (*entity.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.seq++
	v := &entity.Visitor{
		ID:        id,
		Name:      name,
		Mobile:    mobile,
		LoginTime: r.clock.Now(),
		Seq:       r.seq,
	}
	r.visitors[id] = v
	return v.Clone(), nil
}

// GetByID obtiene un visitante por ID.
func (r *VisitorRepo) GetByID(_ context.Context, id int64) (*entity.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visitors[id].Clone(), nil
}

// ListAll lista todos los visitantes, entrada más reciente primero.
func (r *VisitorRepo) ListAll(_ context.Context) ([]*entity.Visitor, error) {
	r.mu.Lock()
	list := make([]*entity.Visitor, 0, len(r.visitors))
	for _, v := range r.visitors {
		list = append(list, v.Clone())
	}
	r.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].NewerThan(list[j]) })
	return list, nil
}

// MarkLogout registra la salida. Si ya estaba registrada no la modifica.
func (r *VisitorRepo) MarkLogout(_ context.Context, id int64) (*entity.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[id]
	if !ok {
		return nil, nil
	}
	if v.IsActive() {
		now := r.clock.Now()
		if now.Before(v.LoginTime) {
			now = v.LoginTime
		}
		v.LogoutTime = &now
	}
	return v.Clone(), nil
}

// Stats cuenta visitantes totales y activos.
func (r *VisitorRepo) Stats(_ context.Context) (entity.VisitorStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := entity.VisitorStats{Total: len(r.visitors)}
	for _, v := range r.visitors {
		if v.IsActive() {
			stats.Active++
		}
	}
	return stats, nil
}
