package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_WritesOSC52(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{Out: &buf, Env: func(string) string { return "" }}
	require.True(t, term.Available())

	require.NoError(t, term.Copy(context.Background(), "note"))
	assert.Contains(t, buf.String(), "\x1b]52;c;"+base64.StdEncoding.EncodeToString([]byte("note")))
}

func TestTerminal_TmuxPassthrough(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{Out: &buf, Env: func(k string) string {
		if k == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}}
	require.NoError(t, term.Copy(context.Background(), "note"))
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestTerminal_Unavailable(t *testing.T) {
	var term *Terminal
	assert.False(t, term.Available())
	assert.False(t, (&Terminal{}).Available())
}
