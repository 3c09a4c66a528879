package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = Init("info", "text")
	})

	require.NoError(t, Init("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, Log.Logger.GetLevel())

	Log.WithField("line", 3).Debug("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(3), entry["line"])

	require.NoError(t, Init("", "text"))
	assert.Equal(t, logrus.DebugLevel, Log.Logger.GetLevel())

	assert.Error(t, Init("loud", ""))
	assert.EqualError(t, Init("", "xml"), "unknown log format: xml (supported: text, json)")
}
