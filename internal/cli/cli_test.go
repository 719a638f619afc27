package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportAPI answers every status report with an empty object, except
// capital and the roll command.
func reportAPI(t *testing.T, rollReply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/capital":
			io.WriteString(w, `{"now": 2000, "yesterday": 1000}`)
		case r.URL.Path == "/rolls" && r.Method == http.MethodPost:
			io.WriteString(w, rollReply)
		case r.URL.Path == "/rolls":
			io.WriteString(w, `{"GOLD": {"status": "No_Roll", "roll_expiry": 10, "allowable": ["Passive"]}}`)
		default:
			io.WriteString(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dashboard version dev\n", out)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Backend: http://127.0.0.1:5000")
	assert.Contains(t, out, "Listen: 127.0.0.1:8080")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: nowhere\n"), 0644))

	_, err := run(t, "config", "validate", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestBadRootConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	_, err = run(t, "--log-format", "xml", "render")
	require.Error(t, err)
}

func TestRenderToFile(t *testing.T) {
	api := reportAPI(t, `{}`)
	path := filepath.Join(t.TempDir(), "status.html")

	_, err := run(t, "--backend", api.URL, "--log-level", "error", "render", "-o", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(b)
	assert.Contains(t, page, `<span id="capital-tl" class="tl green">Capital $2,000</span>`)
	assert.Contains(t, page, `<tr id="rolls_GOLD">`)
}

func TestRenderToStdout(t *testing.T) {
	api := reportAPI(t, `{}`)

	out, err := run(t, "--backend", api.URL, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
}

func TestRollStatePatch(t *testing.T) {
	api := reportAPI(t, `{"new_state": "Passive", "allowable": ["No_Roll", "Force"]}`)

	out, err := run(t, "--backend", api.URL, "roll", "GOLD", "Passive")
	require.NoError(t, err)
	assert.Contains(t, out, "reply: state_patch")
	assert.Contains(t, out, "No_Roll,Force")
}

func TestRollPreview(t *testing.T) {
	api := reportAPI(t, `{"single": {"2023-01-02": {"current": 1.5, "new": 2.5}}, "multiple": {}}`)

	out, err := run(t, "--backend", api.URL, "roll", "GOLD", "Roll_Adjusted")
	require.NoError(t, err)
	assert.Contains(t, out, "reply: preview_single")
	assert.Contains(t, out, "Proposed Adjusted Prices - GOLD")
	assert.Contains(t, out, "2023-01-02")
	assert.Contains(t, out, "--confirmed")
}

func TestRollRejectsUnknownState(t *testing.T) {
	_, err := run(t, "roll", "GOLD", "Sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown roll state")
}
