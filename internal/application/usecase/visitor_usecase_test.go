package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Visitas-api/internal/application/dto"
	"github.com/jhoicas/Visitas-api/internal/application/usecase"
	"github.com/jhoicas/Visitas-api/internal/domain"
	"github.com/jhoicas/Visitas-api/internal/domain/entity"
	"github.com/jhoicas/Visitas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/validator"
)

func newUseCase(clk clock.Clock) *usecase.VisitorUseCase {
	return usecase.NewVisitorUseCase(memory.NewVisitorRepository(clk), validator.New())
}

func TestSignIn_Valido(t *testing.T) {
	t0 := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(clock.NewFixed(t0))

	out, err := uc.SignIn(context.Background(), dto.CreateVisitorRequest{Name: "Asha Rao", Mobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Asha Rao", out.Name)
	assert.Equal(t, "9876543210", out.Mobile)
	assert.Equal(t, t0, out.LoginTime)
	assert.Nil(t, out.LogoutTime)
}

func TestSignIn_InvalidoNoCrea(t *testing.T) {
	uc := newUseCase(nil)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, dto.CreateVisitorRequest{Name: "", Mobile: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *validator.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSignIn_MobilesRechazados(t *testing.T) {
	uc := newUseCase(nil)
	for _, mobile := range []string{"12345", "12345678901", "12345abcde"} {
		_, err := uc.SignIn(context.Background(), dto.CreateVisitorRequest{Name: "Ben Lee", Mobile: mobile})
		var vErr *validator.ValidationError
		require.True(t, errors.As(err, &vErr), mobile)
		assert.True(t, vErr.Has("mobile"), mobile)
		assert.False(t, vErr.Has("name"), mobile)
	}
}

func TestSignIn_NombreNormalizadoNFC(t *testing.T) {
	uc := newUseCase(nil)
	// 100 "é" descompuestas (e + U+0301) son 200 runas, pero 100 tras NFC.
	name := strings.Repeat("e\u0301", 100)
	out, err := uc.SignIn(context.Background(), dto.CreateVisitorRequest{Name: name, Mobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("\u00e9", 100), out.Name)
}

func TestSignOut(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
	uc := newUseCase(clk)
	ctx := context.Background()

	in, err := uc.SignIn(ctx, dto.CreateVisitorRequest{Name: "Asha Rao", Mobile: "9876543210"})
	require.NoError(t, err)

	clk.Advance(30 * time.Minute)
	out, err := uc.SignOut(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, out.LogoutTime)
	assert.Equal(t, in.LoginTime.Add(30*time.Minute), *out.LogoutTime)

	got, err := uc.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, out.LogoutTime, got.LogoutTime)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.VisitorStatsResponse{Total: 1, Active: 0}, stats)
}

func TestSignOut_Desconocido(t *testing.T) {
	uc := newUseCase(nil)
	out, err := uc.SignOut(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, out)

	got, err := uc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

type failingRepo struct{ err error }

func (f failingRepo) Create(context.Context, string, string) (*entity.Visitor, error) { return nil, f.err }
func (f failingRepo) GetByID(context.Context, int64) (*entity.Visitor, error)        { return nil, f.err }
func (f failingRepo) ListAll(context.Context) ([]*entity.Visitor, error)              { return nil, f.err }
func (f failingRepo) MarkLogout(context.Context, int64) (*entity.Visitor, error)     { return nil, f.err }
func (f failingRepo) Stats(context.Context) (entity.VisitorStats, error) {
	return entity.VisitorStats{}, f.err
}

func TestErroresDelRepositorioSePropagan(t *testing.T) {
	boom := errors.New("boom")
	uc := usecase.NewVisitorUseCase(failingRepo{err: boom}, nil)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, dto.CreateVisitorRequest{Name: "Asha", Mobile: "9876543210"})
	assert.ErrorIs(t, err, boom)
	_, err = uc.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = uc.SignOut(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = uc.Stats(ctx)
	assert.ErrorIs(t, err, boom)
}
