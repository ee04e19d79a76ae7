package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Visitas-api/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	log.Info().Str("store", "memory").Msg("iniciando")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "memory", line["store"])
	assert.Equal(t, "iniciando", line["message"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})
	log.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_DebugSoloConNivelDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}).Debug().Msg("oculto")
	assert.Zero(t, buf.Len())

	logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf}).Debug().Msg("visible")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}
