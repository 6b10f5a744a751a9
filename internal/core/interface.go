package core

import "context"

// QueueBackend is the list-like store the work queue lives in.
type QueueBackend interface {
	Name() string
	Ping(ctx context.Context) error
	LPush(ctx context.Context, key string, value []byte) (int64, error)
	// RPop returns ok == false when the list is empty.
	RPop(ctx context.Context, key string) (value []byte, ok bool, err error)
	LLen(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, key string) (int64, error)
}

// CommandRelay runs a short inline script inside a remote workload and
// returns its trimmed standard output.
type CommandRelay interface {
	Target() string
	Run(ctx context.Context, script string) (string, error)
}

type QueueReader interface {
	Length(ctx context.Context) int64
}

type ClusterReader interface {
	RunningReplicaCount(ctx context.Context, namespace, selector string) int
	AutoscalerStatus(ctx context.Context, namespace string) AutoscalerStatus
}
