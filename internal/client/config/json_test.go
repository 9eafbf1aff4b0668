package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.json")
	payload := `{
		"api_base_url": "http://localhost:8100/api",
		"session_db_path": "alt.db",
		"request_timeout": "45s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://localhost:8100/api", c.APIBaseURL)
	assert.Equal(t, "alt.db", c.SessionDBPath)
	assert.Equal(t, 45*time.Second, c.RequestTimeout)
}

func TestParseJson_NoFileFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
}

func TestParseJson_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "http://x/api"}`), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-config", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://x/api", c.APIBaseURL)
	assert.Equal(t, "fitsupply.db", c.SessionDBPath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}
