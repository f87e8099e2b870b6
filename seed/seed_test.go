package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONList(t *testing.T) {
	data := []byte(`[
		{"id": 1, "company": "Acme", "product": "A", "status": "Active", "channel": "Direct", "accountExec": "Bob", "dealAmount": 1200},
		{"id": 2, "company": "Zeta", "product": "B", "status": "Pending", "channel": "Partner", "accountExec": "Alice", "dealAmount": "n/a"}
	]`)

	clients, err := Parse(data, ".json")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Acme", clients[0].Company)
	assert.Equal(t, "1200", clients[0].DealAmount.String())
	assert.False(t, clients[1].DealAmount.Valid)
}

func TestParseJSONDocument(t *testing.T) {
	clients, err := Parse([]byte(`{"clients": [{"company": "Acme"}]}`), ".json")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Company)
}

func TestParseYAML(t *testing.T) {
	list := []byte(`
- company: Acme
  product: A
  status: Active
  channel: Direct
  accountExec: Bob
  endDate: 2025-06-30
`)
	clients, err := Parse(list, ".yaml")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "2025-06-30", clients[0].EndDate.String())

	doc := []byte("clients:\n  - company: Zeta\n")
	clients, err = Parse(doc, ".yml")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Zeta", clients[0].Company)
}

func TestParseEmpty(t *testing.T) {
	clients, err := Parse([]byte("  \n"), ".json")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := Load(path)
	assert.Error(t, err)

	clients, err := LoadDefault(path)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"company":"Acme"}]`), 0600))

	clients, err := Load(path)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"company":`), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
