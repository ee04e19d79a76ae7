package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Visitas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/config"
)

func TestOpenStore_MemoriaPorDefecto(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}

	repo, closeStore, err := openStore(context.Background(), cfg, clock.NewSystem())
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &memory.VisitorRepo{}, repo)
}
