package logging

import (
	"os"
	"path/filepath"
	"testing"

	"rinklog/pkg/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})
	path := filepath.Join(t.TempDir(), "rinklog.log")

	closer := Setup(true, config.LogConfig{File: path, MaxSizeMB: 1})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	log.WithField("table", "Roster").Debug("replaced table contents")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "replaced table contents")
	assert.Contains(t, string(b), "table=Roster")
}

func TestSetupWithoutFile(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	closer := Setup(false, config.LogConfig{})
	assert.NoError(t, closer.Close())
}
