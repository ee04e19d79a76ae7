package repository

import (
	"context"

	"github.com/jhoicas/Visitas-api/internal/domain/entity"
)

// VisitorRepository define el puerto de persistencia para Visitor (DIP).
// GetByID y MarkLogout devuelven (nil, nil) cuando el visitante no existe.
type VisitorRepository interface {
	Create(ctx context.Context, name, mobile string) (*entity.Visitor, error)
	GetByID(ctx context.Context, id int64) (*entity.Visitor, error)
	ListAll(ctx context.Context) ([]*entity.Visitor, error)
	MarkLogout(ctx context.Context, id int64) (*entity.Visitor, error)
	Stats(ctx context.Context) (entity.VisitorStats, error)
}
