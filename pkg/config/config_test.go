package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaling_probe/pkg/utils"
)

func TestDefaults(t *testing.T) {
	cfg, err := ReadProbeConfiguration("", nil)
	require.NoError(t, err)

	assert.Equal(t, utils.DefaultRedisHost, cfg.RedisConf.Host)
	assert.Equal(t, 6379, cfg.RedisConf.Port)
	assert.Equal(t, "celery", cfg.RedisConf.Queue)
	assert.Equal(t, "backend", cfg.Kubernetes.Namespace)
	assert.Equal(t, "app=backend", cfg.Kubernetes.Selector)
	assert.Equal(t, 5*time.Minute, cfg.Monitor.Duration())
	assert.Equal(t, 15*time.Second, cfg.Monitor.Interval())
	assert.Equal(t, int64(5), cfg.Policy.QueueThreshold)
	assert.Equal(t, 1, cfg.Policy.ReplicaBaseline)
	assert.Equal(t, time.Second, cfg.Task.ProcessingDelay())
	assert.Len(t, cfg.Task.Args, 20)
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
verbosity: debug
redis:
  host: redis.local
  port: 6380
  queue: weather
kubernetes:
  namespace: workers
monitor:
  intervalSeconds: 5
policy:
  queueThreshold: 10
  replicaBaseline: 2
`), 0644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("namespace", "backend", "")
	flags.Int("duration", 5, "")
	require.NoError(t, flags.Parse([]string{"--namespace", "override", "--duration", "2"}))

	cfg, err := ReadProbeConfiguration(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Verbosity)
	assert.Equal(t, "redis.local", cfg.RedisConf.Host)
	assert.Equal(t, 6380, cfg.RedisConf.Port)
	assert.Equal(t, "weather", cfg.RedisConf.Queue)
	assert.Equal(t, "override", cfg.Kubernetes.Namespace, "flags win over the file")
	assert.Equal(t, 2, cfg.Monitor.DurationMinutes)
	assert.Equal(t, 5, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, int64(10), cfg.Policy.QueueThreshold)
	assert.Equal(t, 2, cfg.Policy.ReplicaBaseline)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := ReadProbeConfiguration(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := ReadProbeConfiguration("", nil)
	require.NoError(t, err)

	cfg.Monitor.IntervalSeconds = 0
	cfg.Monitor.DurationMinutes = -1
	cfg.RedisConf.Port = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check interval")
	assert.Contains(t, err.Error(), "duration")
	assert.Contains(t, err.Error(), "redis port")
}

func TestParseConfigPath(t *testing.T) {
	folder, name, kind := parseConfigPath("probe.yaml")
	assert.Equal(t, "./", folder)
	assert.Equal(t, "probe", name)
	assert.Equal(t, "yaml", kind)

	folder, name, kind = parseConfigPath("/etc/probe/config.json")
	assert.Equal(t, "/etc/probe/", folder)
	assert.Equal(t, "config", name)
	assert.Equal(t, "json", kind)
}
