package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigWatcher_GetConfig 测试监听器持有初始配置
func TestConfigWatcher_GetConfig(t *testing.T) {
	cfg := Default()
	watcher := NewConfigWatcher(cfg, "does-not-exist.yaml")

	assert.Same(t, cfg, watcher.GetConfig())
}

// TestConfigWatcher_StartMissingFile 测试配置文件缺失时启动失败
func TestConfigWatcher_StartMissingFile(t *testing.T) {
	watcher := NewConfigWatcher(Default(), "does-not-exist.yaml")
	assert.Error(t, watcher.Start())
}

// TestConfigWatcher_Reload 测试配置热加载
func TestConfigWatcher_Reload(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "watcher-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("log:\n  level: \"info\"\n")
	require.NoError(t, err)
	tmpFile.Close()

	watcher := NewConfigWatcher(Default(), tmpFile.Name())
	defer watcher.Stop()

	reloaded := make(chan *Config, 1)
	watcher.OnConfigChange(func(newCfg *Config) {
		select {
		case reloaded <- newCfg:
		default:
		}
	})
	require.NoError(t, watcher.Start())

	// 留出时间让 fsnotify 完成注册
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(tmpFile.Name(), []byte("log:\n  level: \"debug\"\n"), 0o644))

	select {
	case newCfg := <-reloaded:
		assert.Equal(t, "debug", newCfg.Log.Level)
		// 回调先于配置指针替换执行,轮询等待替换完成
		assert.Eventually(t, func() bool {
			return watcher.GetConfig().Log.Level == "debug"
		}, time.Second, 10*time.Millisecond)
	case <-time.After(3 * time.Second):
		t.Skip("filesystem events not delivered in this environment")
	}
}
