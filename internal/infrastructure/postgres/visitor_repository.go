package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Visitas-api/internal/domain/entity"
	"github.com/jhoicas/Visitas-api/internal/domain/repository"
	"github.com/jhoicas/Visitas-api/pkg/clock"
)

var _ repository.VisitorRepository = (*VisitorRepo)(nil)

const visitorColumns = `id, name, mobile, login_time, logout_time`

// VisitorRepo implementación de VisitorRepository sobre PostgreSQL (usable con pool o tx).
// El BIGSERIAL hace de ID y de orden de inserción.
type VisitorRepo struct {
	q     Querier
	clock clock.Clock
}

// NewVisitorRepository construye el adaptador de persistencia para visitantes.
func NewVisitorRepository(q Querier, clk clock.Clock) *VisitorRepo {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &VisitorRepo{q: q, clock: clk}
}

// now trunca a microsegundos, la precisión de TIMESTAMPTZ.
func (r *VisitorRepo) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Microsecond)
}

// Create persiste un nuevo visitante.
func (r *VisitorRepo) Create(ctx context.Context, name, mobile string) (*entity.Visitor, error) {
	query := `
		INSERT INTO visitors (name, mobile, login_time)
		VALUES ($1, $2, $3)
		RETURNING ` + visitorColumns
	v, err := scanVisitor(r.q.QueryRow(ctx, query, name, mobile, r.now()))
	if err != nil {
		return nil, fmt.Errorf("insert visitor: %w", err)
	}
	return v, nil
}

// GetByID obtiene un visitante por ID.
func (r *VisitorRepo) GetByID(ctx context.Context, id int64) (*entity.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`
	v, err := scanVisitor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visitor: %w", err)
	}
	return v, nil
}

// ListAll lista todos los visitantes, entrada más reciente primero.
func (r *VisitorRepo) ListAll(ctx context.Context) ([]*entity.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors ORDER BY login_time DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Visitor, 0)
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// MarkLogout registra la salida solo si aún no existe; si ya existe devuelve el registro intacto.
func (r *VisitorRepo) MarkLogout(ctx context.Context, id int64) (*entity.Visitor, error) {
	query := `
		UPDATE visitors SET logout_time = GREATEST($2, login_time)
		WHERE id = $1 AND logout_time IS NULL
		RETURNING ` + visitorColumns
	v, err := scanVisitor(r.q.QueryRow(ctx, query, id, r.now()))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update visitor logout: %w", err)
	}
	// Sin filas: no existe o ya tenía salida.
	return r.GetByID(ctx, id)
}

// Stats cuenta visitantes totales y activos.
func (r *VisitorRepo) Stats(ctx context.Context) (entity.VisitorStats, error) {
	var s entity.VisitorStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE logout_time IS NULL)
		FROM visitors`).Scan(&s.Total, &s.Active)
	if err != nil {
		return entity.VisitorStats{}, fmt.Errorf("visitor stats: %w", err)
	}
	return s, nil
}

func scanVisitor(row pgx.Row) (*entity.Visitor, error) {
	var v entity.Visitor
	if err := row.Scan(&v.ID, &v.Name, &v.Mobile, &v.LoginTime, &v.LogoutTime); err != nil {
		return nil, err
	}
	v.LoginTime = v.LoginTime.UTC()
	if v.LogoutTime != nil {
		t := v.LogoutTime.UTC()
		v.LogoutTime = &t
	}
	v.Seq = uint64(v.ID)
	return &v, nil
}
