package notify

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterNotify(t *testing.T) {
	var buf bytes.Buffer
	c := NewCenter(log.New(&buf), 3)

	msg := c.Notify(Success, MsgClientUpdated)
	_, err := ulid.Parse(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgClientUpdated, msg.Text)
	assert.Contains(t, buf.String(), MsgClientUpdated)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, msg.ID, latest.ID)

	got, ok := c.Take(msg.ID)
	require.True(t, ok)
	assert.Equal(t, Success, got.Level)
}

func TestCenterKeepsBoundedHistory(t *testing.T) {
	c := NewCenter(log.New(&bytes.Buffer{}), 2)

	c.Notify(Info, "one")
	c.Notify(Error, "two")
	c.Notify(Success, "three")

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, "two", history[0].Text)
	assert.Equal(t, "three", history[1].Text)
}

func TestCenterEmpty(t *testing.T) {
	c := NewCenter(nil, 0)

	_, ok := c.Latest()
	assert.False(t, ok)
	_, ok = c.Take("missing")
	assert.False(t, ok)
}
