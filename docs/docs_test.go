package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "Messagely API", parsed.Info["title"])
	for _, p := range []string{"/auth/login", "/auth/register", "/users/", "/users/{username}", "/messages/{id}", "/messages/{id}/read"} {
		assert.Contains(t, parsed.Paths, p)
	}
}
