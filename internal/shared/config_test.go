package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendHTTP, cfg.Backend)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.FetchRetries)
	assert.Equal(t, 4, cfg.CheckWorkers)
	assert.Equal(t, "collections", cfg.ContentAPI)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CONTENT_BACKEND", "redis")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_RETRIES", "0")

	cfg, err := Load([]string{"--addr", ":7000"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr, "flag wins over env")
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchRetries)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "unknown backend", args: []string{"--backend", "ftp"}},
		{name: "negative retries", env: map[string]string{"FETCH_RETRIES": "-1"}},
		{name: "zero rps", env: map[string]string{"CONTENT_RPS": "0"}},
		{name: "unknown api layout", env: map[string]string{"CONTENT_API_LAYOUT": "graphql"}},
		{name: "bad duration", env: map[string]string{"FETCH_TIMEOUT": "soon"}},
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "stray argument", args: []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}
