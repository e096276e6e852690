package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"spmtutor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
database:
  driver: sqlite
  path: %s
jwt:
  secret: watcher-test-secret
ai:
  provider: mock
log:
  level: %s
`

func writeConfig(t *testing.T, path, level string) {
	t.Helper()
	body := []byte(fmt.Sprintf(baseYAML, filepath.Join(filepath.Dir(path), "spm.db"), level))
	require.NoError(t, os.WriteFile(path, body, 0o644))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	writeConfig(t, file, "info")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got atomic.Value
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, file, func(cfg *config.Config) { got.Store(cfg.Log.Level) })
	}()

	// 等待 watcher 完成注册
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, file, "warn")

	require.Eventually(t, func() bool {
		v, _ := got.Load().(string)
		return v == "warn"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
