// Package redis implementa VisitorRepository sobre Redis.
//
// Claves (con el prefijo configurado):
//
//	<p>visitors:seq       contador INCR de IDs
//	<p>visitor:<id>       hash con name, mobile, login_time, logout_time
//	<p>visitors:by_login  zset, score = login en microsegundos, miembro = ID con ceros a la izquierda
//	<p>visitors:active    set de IDs sin salida
//
// Con scores iguales ZREVRANGE ordena por miembro descendente, es decir, por ID.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Visitas-api/internal/domain/entity"
	"github.com/jhoicas/Visitas-api/internal/domain/repository"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/config"
)

var _ repository.VisitorRepository = (*VisitorRepo)(nil)

const (
	fieldName   = "name"
	fieldMobile = "mobile"
	fieldLogin  = "login_time"
	fieldLogout = "logout_time"
)

// VisitorRepo implementación de VisitorRepository sobre Redis.
type VisitorRepo struct {
	rdb    goredis.UniversalClient
	clock  clock.Clock
	prefix string
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewVisitorRepository construye el adaptador. prefix aísla las claves (p. ej. "visitas:").
func NewVisitorRepository(rdb goredis.UniversalClient, prefix string, clk clock.Clock) *VisitorRepo {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &VisitorRepo{rdb: rdb, clock: clk, prefix: prefix}
}

func (r *VisitorRepo) seqKey() string    { return r.prefix + "visitors:seq" }
func (r *VisitorRepo) byLoginKey() string { return r.prefix + "visitors:by_login" }
func (r *VisitorRepo) activeKey() string  { return r.prefix + "visitors:active" }

func (r *VisitorRepo) visitorKey(id int64) string {
	return r.prefix + "visitor:" + strconv.FormatInt(id, 10)
}

func member(id int64) string { return fmt.Sprintf("%019d", id) }

// now trunca a microsegundos, la precisión del score del zset.
func (r *VisitorRepo) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Microsecond)
}

// Create registra la entrada de un visitante.
func (r *VisitorRepo) Create(ctx context.Context, name, mobile string) (*entity.Visitor, error) {
	id, err := r.rdb.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("allocate visitor id: %w", err)
	}
	v := &entity.Visitor{ID: id, Name: name, Mobile: mobile, LoginTime: r.now(), Seq: uint64(id)}

	_, err = r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.visitorKey(id),
			fieldName, v.Name,
			fieldMobile, v.Mobile,
			fieldLogin, v.LoginTime.Format(time.RFC3339Nano),
		)
		pipe.ZAdd(ctx, r.byLoginKey(), goredis.Z{Score: float64(v.LoginTime.UnixMicro()), Member: member(id)})
		pipe.SAdd(ctx, r.activeKey(), id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert visitor: %w", err)
	}
	return v, nil
}

// GetByID obtiene un visitante por ID.
func (r *VisitorRepo) GetByID(ctx context.Context, id int64) (*entity.Visitor, error) {
	fields, err := r.rdb.HGetAll(ctx, r.visitorKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get visitor: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeVisitor(id, fields)
}

// ListAll lista todos los visitantes, entrada más reciente primero.
func (r *VisitorRepo) ListAll(ctx context.Context) ([]*entity.Visitor, error) {
	members, err := r.rdb.ZRevRange(ctx, r.byLoginKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}

	ids := make([]int64, 0, len(members))
	cmds := make([]*goredis.MapStringStringCmd, 0, len(members))
	_, err = r.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, m := range members {
			id, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				return fmt.Errorf("parse member %q: %w", m, err)
			}
			ids = append(ids, id)
			cmds = append(cmds, pipe.HGetAll(ctx, r.visitorKey(id)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}

	list := make([]*entity.Visitor, 0, len(cmds))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		v, err := decodeVisitor(ids[i], fields)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

// MarkLogout registra la salida con HSETNX: la primera gana y las siguientes no modifican.
func (r *VisitorRepo) MarkLogout(ctx context.Context, id int64) (*entity.Visitor, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil || v == nil || !v.IsActive() {
		return v, err
	}

	now := r.now()
	if now.Before(v.LoginTime) {
		now = v.LoginTime
	}
	set, err := r.rdb.HSetNX(ctx, r.visitorKey(id), fieldLogout, now.Format(time.RFC3339Nano)).Result()
	if err != nil {
		return nil, fmt.Errorf("update visitor logout: %w", err)
	}
	if !set {
		// Otra petición registró la salida antes.
		return r.GetByID(ctx, id)
	}
	if err := r.rdb.SRem(ctx, r.activeKey(), id).Err(); err != nil {
		return nil, fmt.Errorf("update active set: %w", err)
	}
	v.LogoutTime = &now
	return v, nil
}

// Stats cuenta visitantes totales y activos.
func (r *VisitorRepo) Stats(ctx context.Context) (entity.VisitorStats, error) {
	var total, active *goredis.IntCmd
	_, err := r.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		total = pipe.ZCard(ctx, r.byLoginKey())
		active = pipe.SCard(ctx, r.activeKey())
		return nil
	})
	if err != nil {
		return entity.VisitorStats{}, fmt.Errorf("visitor stats: %w", err)
	}
	return entity.VisitorStats{Total: int(total.Val()), Active: int(active.Val())}, nil
}

func decodeVisitor(id int64, fields map[string]string) (*entity.Visitor, error) {
	login, err := time.Parse(time.RFC3339Nano, fields[fieldLogin])
	if err != nil {
		return nil, fmt.Errorf("decode visitor %d login_time: %w", id, err)
	}
	v := &entity.Visitor{
		ID:        id,
		Name:      fields[fieldName],
		Mobile:    fields[fieldMobile],
		LoginTime: login.UTC(),
		Seq:       uint64(id),
	}
	if raw, ok := fields[fieldLogout]; ok && raw != "" {
		logout, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode visitor %d logout_time: %w", id, err)
		}
		logout = logout.UTC()
		v.LogoutTime = &logout
	}
	return v, nil
}

