package usecase

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Visitas-api/internal/application/dto"
	"github.com/jhoicas/Visitas-api/internal/domain"
	"github.com/jhoicas/Visitas-api/internal/domain/entity"
	"github.com/jhoicas/Visitas-api/internal/domain/repository"
	"github.com/jhoicas/Visitas-api/pkg/validator"
)

// VisitorUseCase casos de uso del registro de visitas: entrada, listado y salida.
type VisitorUseCase struct {
	repo      repository.VisitorRepository
	validator *validator.StructValidator
}

// NewVisitorUseCase construye el caso de uso.
func NewVisitorUseCase(repo repository.VisitorRepository, v *validator.StructValidator) *VisitorUseCase {
	if v == nil {
		v = validator.New()
	}
	return &VisitorUseCase{repo: repo, validator: v}
}

// SignIn valida la entrada y crea el visitante. Los errores de validación
// envuelven domain.ErrInvalidInput y un *validator.ValidationError con todos los campos inválidos.
func (uc *VisitorUseCase) SignIn(ctx context.Context, in dto.CreateVisitorRequest) (*dto.VisitorResponse, error) {
	in.Name = norm.NFC.String(in.Name)
	if err := uc.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	visitor, err := uc.repo.Create(ctx, in.Name, in.Mobile)
	if err != nil {
		return nil, err
	}
	return toVisitorResponse(visitor), nil
}

// GetByID obtiene un visitante; domain.ErrNotFound si no existe.
func (uc *VisitorUseCase) GetByID(ctx context.Context, id int64) (*dto.VisitorResponse, error) {
	visitor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, domain.ErrNotFound
	}
	return toVisitorResponse(visitor), nil
}

// List devuelve todos los visitantes, entrada más reciente primero.
func (uc *VisitorUseCase) List(ctx context.Context) ([]dto.VisitorResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VisitorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVisitorResponse(v))
	}
	return items, nil
}

// SignOut registra la salida; domain.ErrNotFound si el visitante no existe.
// Repetir la salida devuelve el registro sin cambios.
func (uc *VisitorUseCase) SignOut(ctx context.Context, id int64) (*dto.VisitorResponse, error) {
	visitor, err := uc.repo.MarkLogout(ctx, id)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, domain.ErrNotFound
	}
	return toVisitorResponse(visitor), nil
}

// Stats devuelve el total de visitantes y cuántos siguen dentro.
func (uc *VisitorUseCase) Stats(ctx context.Context) (*dto.VisitorStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.VisitorStatsResponse{Total: stats.Total, Active: stats.Active}, nil
}

func toVisitorResponse(v *entity.Visitor) *dto.VisitorResponse {
	if v == nil {
		return nil
	}
	return &dto.VisitorResponse{
		ID:         v.ID,
		Name:       v.Name,
		Mobile:     v.Mobile,
		LoginTime:  v.LoginTime,
		LogoutTime: v.LogoutTime,
	}
}
