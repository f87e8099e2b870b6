package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/clientdesk/models"
)

const testSeed = `[
	{"id": 1, "company": "Acme", "product": "A", "status": "Active", "channel": "Direct", "accountExec": "Bob",
	 "startDate": "2025-01-01", "endDate": "2025-12-31", "dealAmount": 12000},
	{"id": 2, "company": "Zeta", "product": "B", "status": "Pending", "channel": "Partner", "accountExec": "Alice", "dealAmount": 500},
	{"id": 3, "company": "Mid", "product": "A", "status": "Inactive", "channel": "Direct", "accountExec": "Bob"}
]`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0600))
	return path
}

// run executes the command tree with a seeded session and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CLIENTDESK_FEATURES", "all")
	t.Setenv("CLIENTDESK_LOG_FILE", "")

	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--seed", writeSeed(t), "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestListJSON(t *testing.T) {
	out, err := run(t, "list", "--format", "json", "--product", "A", "--sort", "company", "--desc")
	require.NoError(t, err)

	var clients []models.Client
	require.NoError(t, json.Unmarshal([]byte(out), &clients))
	require.Len(t, clients, 2)
	assert.Equal(t, "Mid", clients[0].Company)
	assert.Equal(t, "Acme", clients[1].Company)
}

func TestListSearch(t *testing.T) {
	out, err := run(t, "list", "--format", "json", "--search", "PARTNER")
	require.NoError(t, err)

	var clients []models.Client
	require.NoError(t, json.Unmarshal([]byte(out), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "Zeta", clients[0].Company)
}

func TestListTable(t *testing.T) {
	out, err := run(t, "list", "--sort", "dealAmount")
	require.NoError(t, err)

	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Zeta")
	assert.Contains(t, strings.ToLower(out), "3 clients")
	// Missing amounts sort last
	assert.Less(t, strings.Index(out, "Zeta"), strings.Index(out, "Acme"))
	assert.Less(t, strings.Index(out, "Acme"), strings.Index(out, "Mid"))
}

func TestListRejectsBadFlags(t *testing.T) {
	_, err := run(t, "list", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = run(t, "list", "--sort", "color")
	assert.ErrorContains(t, err, "invalid --sort")
}

func TestOptions(t *testing.T) {
	out, err := run(t, "options", "--format", "json")
	require.NoError(t, err)

	var opts map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, []string{"A", "B"}, opts["product"])
	assert.Equal(t, []string{"Active", "Inactive", "Pending"}, opts["status"])
	assert.Equal(t, []string{"Alice", "Bob"}, opts["accountExec"])

	out, err = run(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--as-of", "2025-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "CLIENTDESK DASHBOARD")
	assert.Contains(t, out, "1 active contracts (as of 2025-06-01)")

	_, err = run(t, "stats", "--as-of", "June")
	assert.ErrorContains(t, err, "invalid --as-of")
}

func TestGraphToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execs.dot")
	_, err := run(t, "graph", "-o", path, "--exec", "Bob")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	dot := string(data)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Bob")
	assert.NotContains(t, dot, "Alice")
}

func TestMissingExplicitSeed(t *testing.T) {
	t.Setenv("CLIENTDESK_FEATURES", "all")
	cmd := NewRootCmd("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--seed", filepath.Join(t.TempDir(), "missing.json"), "list"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTUIRejectsUnknownFeature(t *testing.T) {
	_, err := run(t, "tui", "--features", "sort,colors")
	assert.ErrorContains(t, err, "unknown capability")
}
