package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scaling_probe/internal/probe"
	"scaling_probe/pkg/config"
	"scaling_probe/pkg/logger"
	"scaling_probe/pkg/profiler"
	"scaling_probe/pkg/utils"
)

type action int

const (
	noAction action = iota
	clearQueue
	monitorOnly
	simulateProcessing
	addTasks
)

type actionFlags struct {
	configPath  string
	addTasks    int
	monitorOnly bool
	clearQueue  bool
	simulate    int
}

// selected resolves combined flags: clear beats monitor, monitor beats
// simulate, simulate beats add.
func (f actionFlags) selected() action {
	switch {
	case f.clearQueue:
		return clearQueue
	case f.monitorOnly:
		return monitorOnly
	case f.simulate > 0:
		return simulateProcessing
	case f.addTasks > 0:
		return addTasks
	default:
		return noAction
	}
}

// runner builds the probe once the configuration is known; swapped in tests.
type runner func(ctx context.Context, cfg config.ProbeConfig, out io.Writer) (*probe.Probe, func(), error)

const examples = `  scaling_probe --add-tasks 15
  scaling_probe --monitor-only --duration 10
  scaling_probe --clear-queue
  scaling_probe --simulate-processing 5`

func registerFlags(flags *pflag.FlagSet, af *actionFlags) {
	flags.StringVarP(&af.configPath, "config", "c", "", "Optional configuration file (yaml, json or toml)")
	flags.IntVar(&af.addTasks, "add-tasks", 0, "Add N tasks to the queue and monitor scaling")
	flags.BoolVar(&af.monitorOnly, "monitor-only", false, "Only monitor current scaling status")
	flags.BoolVar(&af.clearQueue, "clear-queue", false, "Clear all tasks from the queue")
	flags.IntVar(&af.simulate, "simulate-processing", 0, "Simulate processing N tasks from the queue")

	flags.Int("duration", utils.DefaultDurationMinutes, "Monitoring duration in minutes")
	flags.Int("interval", utils.DefaultIntervalSeconds, "Seconds between two checks")
	flags.String("namespace", utils.DefaultNamespace, "Kubernetes namespace of the workers and the ScaledObject")
	flags.String("selector", utils.DefaultSelector, "Label selector of the worker pods")
	flags.String("kubeconfig", "", "Path to a kubeconfig file (default: $KUBECONFIG, ~/.kube/config or in-cluster)")
	flags.String("redis-host", utils.DefaultRedisHost, "Redis host")
	flags.Int("redis-port", utils.DefaultRedisPort, "Redis port")
	flags.Int("redis-db", 0, "Redis logical database")
	flags.String("queue", utils.DefaultQueueName, "Name of the Redis list holding the tasks")
	flags.Bool("relay-only", false, "Skip the direct connection and always exec into a worker pod")
	flags.Int64("threshold", utils.DefaultQueueThreshold, "Queue length above which a scale up is expected")
	flags.Int("baseline", utils.DefaultReplicaBaseline, "Replica count of the idle deployment")
	flags.String("trace-file", "", "Write every observation to this CSV file")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flags.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace, warn]")
}

func newRootCommand(out io.Writer, build runner) *cobra.Command {
	af := &actionFlags{}

	cmd := &cobra.Command{
		Use:           "scaling_probe",
		Short:         "Test KEDA Redis queue scaling",
		Long:          "Enqueue Celery tasks into Redis and watch whether KEDA scales the worker deployment as expected.",
		Example:       examples,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if af.addTasks < 0 || af.simulate < 0 {
				return fmt.Errorf("%w: task counts must not be negative", probe.ErrUsage)
			}

			selected := af.selected()
			if selected == noAction {
				return cmd.Help()
			}

			cfg, err := config.ReadProbeConfiguration(af.configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("%w: %v", probe.ErrUsage, err)
			}

			logger.SetupLogger(cfg.Verbosity)
			go profiler.SetupProfilerServer(cfg.Profiler)

			p, cleanup, err := build(cmd.Context(), cfg, out)
			if err != nil {
				return err
			}
			defer cleanup()

			return dispatch(cmd.Context(), p, selected, *af)
		},
	}

	cmd.SetOut(out)
	registerFlags(cmd.Flags(), af)

	return cmd
}

func dispatch(ctx context.Context, p *probe.Probe, selected action, af actionFlags) error {
	switch selected {
	case clearQueue:
		return p.ClearQueue(ctx)
	case monitorOnly:
		return p.MonitorOnly(ctx)
	case simulateProcessing:
		return p.SimulateProcessing(ctx, af.simulate)
	case addTasks:
		return p.RunScalingTest(ctx, af.addTasks)
	default:
		return fmt.Errorf("%w: no action selected", probe.ErrUsage)
	}
}
