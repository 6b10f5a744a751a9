package utils

import "time"

const (
	ClusterQueryTimeout  = 10 * time.Second
	QueueMutationTimeout = 30 * time.Second
	RedisDialTimeout     = 5 * time.Second

	DefaultProcessingDelay = time.Second

	DefaultQueueName       = "celery"
	DefaultNamespace       = "backend"
	DefaultSelector        = "app=backend"
	DefaultRedisHost       = "redis-redis-chart.backend.svc.cluster.local"
	DefaultRedisPort       = 6379
	DefaultTaskName        = "app.fetch_weather_data"
	DefaultDurationMinutes = 5
	DefaultIntervalSeconds = 15

	DefaultQueueThreshold  = 5
	DefaultReplicaBaseline = 1

	AutoscalerGroup    = "keda.sh"
	AutoscalerVersion  = "v1alpha1"
	AutoscalerResource = "scaledobjects"
	AutoscalerListKind = "ScaledObjectList"

	RelayContainerCommand = "python3"
)

// SampleCities is the argument pool the weather worker can actually resolve.
var SampleCities = []string{
	"London", "New York", "Tokyo", "Paris", "Berlin",
	"Madrid", "Rome", "Amsterdam", "Sydney", "Toronto",
	"Mumbai", "Dubai", "Singapore", "Barcelona", "Vienna",
	"Prague", "Stockholm", "Oslo", "Copenhagen", "Helsinki",
}
