package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Visitas-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	docs.SwaggerInfo.Host = "localhost:8080"

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "localhost:8080", doc["host"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/visitors")
	assert.Contains(t, paths, "/api/visitors/{id}/logout")
}
