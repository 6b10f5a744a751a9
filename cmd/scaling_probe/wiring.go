package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"scaling_probe/internal/cluster"
	"scaling_probe/internal/core"
	"scaling_probe/internal/monitor"
	"scaling_probe/internal/probe"
	"scaling_probe/internal/queue"
	"scaling_probe/pkg/config"
	"scaling_probe/pkg/redis_helpers"
)

// offlineCluster answers with the read defaults when no cluster credentials
// could be loaded, so queue-only flows keep working.
type offlineCluster struct {
	err error
}

func (o offlineCluster) RunningReplicaCount(_ context.Context, namespace, selector string) int {
	return core.Fail[int](o.err).OrDefault(0, "list pods", namespace+"/"+selector)
}

func (o offlineCluster) AutoscalerStatus(_ context.Context, namespace string) core.AutoscalerStatus {
	return core.Fail[core.AutoscalerStatus](o.err).OrDefault(core.UnknownAutoscalerStatus(), "list scaledobjects", namespace)
}

func buildProbe(ctx context.Context, cfg config.ProbeConfig, out io.Writer) (*probe.Probe, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var observer core.ClusterReader
	var candidates []core.QueueBackend

	if !cfg.RedisConf.RelayOnly {
		redisClient, err := redis_helpers.CreateRedisConnector(ctx, cfg.RedisConf)
		if err != nil {
			logrus.Debugf("Direct redis connection failed - %v", err)
		}

		direct := queue.NewRedisBackend(redisClient)
		closers = append(closers, func() { _ = direct.Close() })
		candidates = append(candidates, direct)
	}

	clients, err := cluster.NewClients(cfg.Kubernetes.Kubeconfig)
	if err != nil {
		logrus.Warnf("Kubernetes is not reachable, pod and autoscaler status will be reported as defaults - %v", err)
		observer = offlineCluster{err: err}
	} else {
		clusterObserver := cluster.NewObserver(clients.Kube, clients.Dynamic)
		observer = clusterObserver

		relay := cluster.NewExecRelay(clients.RestConfig, clients.Kube.CoreV1().RESTClient(), clusterObserver,
			cfg.Kubernetes.Namespace, cfg.Kubernetes.Selector, cfg.Kubernetes.Container)
		candidates = append(candidates, queue.NewRelayBackend(relay, cfg.RedisConf))
	}

	backend, err := queue.SelectBackend(ctx, candidates...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	controller := queue.NewController(backend, queue.Options{
		Key:             cfg.RedisConf.Queue,
		TaskName:        cfg.Task.Name,
		Origin:          cfg.Task.Origin,
		RoutingKey:      cfg.Task.RoutingKey,
		ArgumentPool:    cfg.Task.Args,
		ProcessingDelay: cfg.Task.ProcessingDelay(),
	})

	var sinks []monitor.Sink

	if cfg.TraceOutputFile != "" {
		trace, err := monitor.NewTraceSink(cfg.TraceOutputFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		closers = append(closers, trace.Close)
		sinks = append(sinks, trace)
	}

	if cfg.MetricsAddress != "" {
		metrics := monitor.NewMetricsSink()
		metricsCtx, stop := context.WithCancel(ctx)
		closers = append(closers, stop)
		sinks = append(sinks, metrics)

		go func() {
			if err := monitor.ServeMetrics(metricsCtx, cfg.MetricsAddress, metrics.Handler()); err != nil {
				logrus.Errorf("Metrics server failed - %v", err)
			}
		}()
	}

	policy := monitor.NewPolicy(
		monitor.WithQueueThreshold(cfg.Policy.QueueThreshold),
		monitor.WithReplicaBaseline(cfg.Policy.ReplicaBaseline),
	)

	target := monitor.Target{
		Namespace: cfg.Kubernetes.Namespace,
		Selector:  cfg.Kubernetes.Selector,
	}

	p := probe.New(controller, observer, policy, target, out,
		probe.WithMonitorWindow(cfg.Monitor.Duration(), cfg.Monitor.Interval()),
		probe.WithSinks(sinks...),
	)

	return p, cleanup, nil
}
