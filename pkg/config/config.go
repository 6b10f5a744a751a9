/*
 * MIT License
 *
 * Copyright (c) 2024 EASL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"scaling_probe/pkg/utils"
)

const envPrefix = "SCALING_PROBE"

type ProbeConfig struct {
	Verbosity       string           `mapstructure:"verbosity"`
	TraceOutputFile string           `mapstructure:"traceOutputFile"`
	MetricsAddress  string           `mapstructure:"metricsAddress"`
	Profiler        ProfilerConfig   `mapstructure:"profiler"`
	RedisConf       RedisConf        `mapstructure:"redis"`
	Kubernetes      KubernetesConfig `mapstructure:"kubernetes"`
	Monitor         MonitorConfig    `mapstructure:"monitor"`
	Policy          PolicyConfig     `mapstructure:"policy"`
	Task            TaskConfig       `mapstructure:"task"`
}

type ProfilerConfig struct {
	Enable  bool   `mapstructure:"enable"`
	Mutex   bool   `mapstructure:"mutex"`
	Address string `mapstructure:"address"`
}

type RedisConf struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Db        int    `mapstructure:"db"`
	Queue     string `mapstructure:"queue"`
	RelayOnly bool   `mapstructure:"relayOnly"`
}

type KubernetesConfig struct {
	Kubeconfig string `mapstructure:"kubeconfig"`
	Namespace  string `mapstructure:"namespace"`
	Selector   string `mapstructure:"selector"`
	Container  string `mapstructure:"container"`
}

type MonitorConfig struct {
	DurationMinutes int `mapstructure:"durationMinutes"`
	IntervalSeconds int `mapstructure:"intervalSeconds"`
}

type PolicyConfig struct {
	QueueThreshold  int64 `mapstructure:"queueThreshold"`
	ReplicaBaseline int   `mapstructure:"replicaBaseline"`
}

type TaskConfig struct {
	Name              string   `mapstructure:"name"`
	Origin            string   `mapstructure:"origin"`
	RoutingKey        string   `mapstructure:"routingKey"`
	ProcessingDelayMs int      `mapstructure:"processingDelayMs"`
	Args              []string `mapstructure:"args"`
}

func (m MonitorConfig) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalSeconds) * time.Second
}

func (t TaskConfig) ProcessingDelay() time.Duration {
	return time.Duration(t.ProcessingDelayMs) * time.Millisecond
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"verbosity":    "verbosity",
	"trace-file":   "traceOutputFile",
	"metrics-addr": "metricsAddress",
	"redis-host":   "redis.host",
	"redis-port":   "redis.port",
	"redis-db":     "redis.db",
	"queue":        "redis.queue",
	"relay-only":   "redis.relayOnly",
	"kubeconfig":   "kubernetes.kubeconfig",
	"namespace":    "kubernetes.namespace",
	"selector":     "kubernetes.selector",
	"duration":     "monitor.durationMinutes",
	"interval":     "monitor.intervalSeconds",
	"threshold":    "policy.queueThreshold",
	"baseline":     "policy.replicaBaseline",
}

func parseConfigPath(configPath string) (string, string, string) {
	configFolder, configName := filepath.Split(configPath)
	configName = strings.TrimSuffix(configName, filepath.Ext(configName))
	configType := strings.ReplaceAll(filepath.Ext(configPath), ".", "")

	if configFolder == "" {
		configFolder = "./"
	}

	return configFolder, configName, configType
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbosity", "info")
	v.SetDefault("profiler.address", "localhost:6060")

	v.SetDefault("redis.host", utils.DefaultRedisHost)
	v.SetDefault("redis.port", utils.DefaultRedisPort)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue", utils.DefaultQueueName)

	v.SetDefault("kubernetes.namespace", utils.DefaultNamespace)
	v.SetDefault("kubernetes.selector", utils.DefaultSelector)

	v.SetDefault("monitor.durationMinutes", utils.DefaultDurationMinutes)
	v.SetDefault("monitor.intervalSeconds", utils.DefaultIntervalSeconds)

	v.SetDefault("policy.queueThreshold", utils.DefaultQueueThreshold)
	v.SetDefault("policy.replicaBaseline", utils.DefaultReplicaBaseline)

	v.SetDefault("task.name", utils.DefaultTaskName)
	v.SetDefault("task.origin", "test-script@keda-test")
	v.SetDefault("task.routingKey", utils.DefaultQueueName)
	v.SetDefault("task.processingDelayMs", utils.DefaultProcessingDelay.Milliseconds())
	v.SetDefault("task.args", utils.SampleCities)
}

func setupViper(configPath string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flagName, key := range flagKeys {
			flag := flags.Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	if configPath == "" {
		return v, nil
	}

	configFolder, configName, configType := parseConfigPath(configPath)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configFolder)

	return v, v.ReadInConfig()
}

// ReadProbeConfiguration layers defaults, the optional config file, the
// environment and explicitly set flags, in increasing precedence.
func ReadProbeConfiguration(configPath string, flags *pflag.FlagSet) (ProbeConfig, error) {
	v, err := setupViper(configPath, flags)
	if err != nil {
		return ProbeConfig{}, err
	}

	probeConfig := ProbeConfig{}

	err = v.Unmarshal(&probeConfig)
	if err != nil {
		return ProbeConfig{}, err
	}

	return probeConfig, probeConfig.Validate()
}

func (c ProbeConfig) Validate() error {
	var errs []error

	if c.RedisConf.Host == "" {
		errs = append(errs, errors.New("redis host must be set"))
	}
	if c.RedisConf.Port <= 0 || c.RedisConf.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid redis port %d", c.RedisConf.Port))
	}
	if c.RedisConf.Db < 0 {
		errs = append(errs, fmt.Errorf("invalid redis db index %d", c.RedisConf.Db))
	}
	if c.RedisConf.Queue == "" {
		errs = append(errs, errors.New("queue name must be set"))
	}
	if c.Kubernetes.Namespace == "" {
		errs = append(errs, errors.New("namespace must be set"))
	}
	if c.Monitor.DurationMinutes < 0 {
		errs = append(errs, fmt.Errorf("monitoring duration cannot be negative (%d)", c.Monitor.DurationMinutes))
	}
	if c.Monitor.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("check interval must be positive (%d)", c.Monitor.IntervalSeconds))
	}
	if c.Policy.QueueThreshold < 0 {
		errs = append(errs, fmt.Errorf("queue threshold cannot be negative (%d)", c.Policy.QueueThreshold))
	}
	if c.Policy.ReplicaBaseline < 0 {
		errs = append(errs, fmt.Errorf("replica baseline cannot be negative (%d)", c.Policy.ReplicaBaseline))
	}
	if c.Task.Name == "" {
		errs = append(errs, errors.New("task name must be set"))
	}
	if len(c.Task.Args) == 0 {
		errs = append(errs, errors.New("task argument pool cannot be empty"))
	}

	return errors.Join(errs...)
}
