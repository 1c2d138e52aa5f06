package sqlkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	assert.Same(t, prev, Logger())

	filename := filepath.Join(t.TempDir(), "sqlkit.log")
	l := LogToFile(filename)
	assert.Same(t, l, Logger())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	Logger().WithField("connection", "0").Info("hello")
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"connection":"0"`)
	assert.Contains(t, string(content), `"msg":"hello"`)
}
