package monitor

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"scaling_probe/internal/core"
	"scaling_probe/pkg/tracing"
)

const (
	tableTimeFormat = "15:04:05"
	ruleWidth       = 80

	traceHeader = "time,queue_length,running_replicas,autoscaler_ready,decision\n"
)

// TableSink renders observations as the fixed-width console table.
type TableSink struct {
	out   io.Writer
	mutex sync.Mutex
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (t *TableSink) Begin(duration, interval time.Duration) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	fmt.Fprintf(t.out, "\nMonitoring autoscaling for %s...\n", duration)
	fmt.Fprintf(t.out, "Checking every %s\n", interval)
	fmt.Fprintln(t.out, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(t.out, "%-12s %-8s %-6s %-12s %s\n", "Time", "Queue", "Pods", "KEDA Ready", "Action")
	fmt.Fprintln(t.out, strings.Repeat("-", ruleWidth))
}

func (t *TableSink) Record(observation core.Observation) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	fmt.Fprintf(t.out, "%-12s %-8d %-6d %-12s %s\n",
		observation.Time.Format(tableTimeFormat),
		observation.QueueLength,
		observation.Replicas,
		observation.Ready,
		observation.Decision,
	)
}

func (t *TableSink) End() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	fmt.Fprintln(t.out, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(t.out, "Monitoring completed")
}

// TraceSink appends every observation to a CSV file.
type TraceSink struct {
	service *tracing.TracingService[core.Observation]
}

func NewTraceSink(outputFile string) (*TraceSink, error) {
	service := tracing.NewTracingService[core.Observation](outputFile, traceHeader, writeObservation)
	if err := service.StartTracingService(); err != nil {
		return nil, err
	}

	return &TraceSink{service: service}, nil
}

func (t *TraceSink) Record(observation core.Observation) {
	t.service.InputChannel <- observation
}

func (t *TraceSink) Close() {
	t.service.Stop()
}

func writeObservation(w io.Writer, observation core.Observation) error {
	_, err := fmt.Fprintf(w, "%d,%d,%d,%s,%s\n",
		observation.Time.UnixNano(),
		observation.QueueLength,
		observation.Replicas,
		observation.Ready,
		observation.Decision.Label(),
	)

	return err
}
