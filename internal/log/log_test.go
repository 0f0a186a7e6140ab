package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWithoutRequestKeepsLineShape(t *testing.T) {
	var buf bytes.Buffer
	old := Writer()
	SetOutput(&buf)
	defer SetOutput(old)

	Error(nil, "server.fatal", errors.New("listen tcp :8080: address already in use"), nil)
	Info(nil, "server.start", map[string]any{"port": "8080"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var fatal map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &fatal))
	assert.Equal(t, "server.fatal", fatal["action"])
	assert.Equal(t, "error", fatal["kind"])
	assert.Equal(t, "error", fatal["level"])
	assert.Equal(t, "listen tcp :8080: address already in use", fatal["err"])
	assert.Contains(t, fatal, "ts")
	assert.NotContains(t, fatal, "path", "no request fields without a request")

	var start map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &start))
	assert.Equal(t, "server.start", start["action"])
	assert.Equal(t, map[string]any{"port": "8080"}, start["fields"])
}
