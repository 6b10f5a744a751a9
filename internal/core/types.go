package core

import (
	"time"

	"github.com/google/uuid"
)

type ReadyStatus string

const (
	ReadyTrue    ReadyStatus = "True"
	ReadyFalse   ReadyStatus = "False"
	ReadyUnknown ReadyStatus = "Unknown"
)

// ParseReadyStatus maps a Kubernetes condition status onto the tri-state.
// Anything that is not exactly "True" or "False" is Unknown.
func ParseReadyStatus(status string) ReadyStatus {
	switch ReadyStatus(status) {
	case ReadyTrue:
		return ReadyTrue
	case ReadyFalse:
		return ReadyFalse
	default:
		return ReadyUnknown
	}
}

type DecisionClass int

const (
	NoActionExpected DecisionClass = iota
	ScaleUpExpected
	ScaleDownExpected
	ScaledCorrectly
)

func (d DecisionClass) String() string {
	switch d {
	case ScaleUpExpected:
		return "Should scale UP"
	case ScaleDownExpected:
		return "Should scale DOWN"
	case ScaledCorrectly:
		return "Scaled correctly"
	default:
		return "No scaling needed"
	}
}

// Label is the short machine-friendly form used in traces and metrics.
func (d DecisionClass) Label() string {
	switch d {
	case ScaleUpExpected:
		return "scale_up_expected"
	case ScaleDownExpected:
		return "scale_down_expected"
	case ScaledCorrectly:
		return "scaled_correctly"
	default:
		return "no_action_expected"
	}
}

var AllDecisionClasses = []DecisionClass{NoActionExpected, ScaleUpExpected, ScaleDownExpected, ScaledCorrectly}

// EnvelopeMetadata carries the execution hints attached to a work item.
// Zero values mean "absent".
type EnvelopeMetadata struct {
	Callbacks any
	Errbacks  any
	Chain     any
	Chord     any

	Retries   int
	TimeLimit [2]*float64

	Origin       string
	RoutingKey   string
	Priority     int
	DeliveryMode int
}

type WorkItem struct {
	id            string
	correlationID string

	TaskName string
	Args     []any
	Kwargs   map[string]any
	Metadata EnvelopeMetadata
}

// NewWorkItem generates the identifier once; the correlation id is bound to it
// and neither can be changed afterwards.
func NewWorkItem(taskName string, args []any, metadata EnvelopeMetadata) WorkItem {
	return NewWorkItemWithID(uuid.New().String(), taskName, args, metadata)
}

// NewWorkItemWithID is NewWorkItem with a caller-chosen identifier, e.g. a
// correlation id handed in from outside. An empty id falls back to a new one.
func NewWorkItemWithID(id, taskName string, args []any, metadata EnvelopeMetadata) WorkItem {
	if id == "" {
		id = uuid.New().String()
	}

	return WorkItem{
		id:            id,
		correlationID: id,
		TaskName:      taskName,
		Args:          args,
		Kwargs:        map[string]any{},
		Metadata:      metadata,
	}
}

func (w WorkItem) ID() string {
	return w.id
}

func (w WorkItem) CorrelationID() string {
	return w.correlationID
}

type QueueSample struct {
	Timestamp time.Time
	Length    int64
}

type AutoscalerStatus struct {
	Name         string
	Ready        ReadyStatus
	TriggerCount int
}

func UnknownAutoscalerStatus() AutoscalerStatus {
	return AutoscalerStatus{
		Name:  string(ReadyUnknown),
		Ready: ReadyUnknown,
	}
}

type ClusterSample struct {
	RunningReplicas int
	Autoscaler      AutoscalerStatus
}

type Observation struct {
	Time        time.Time
	QueueLength int64
	Replicas    int
	Ready       ReadyStatus
	Decision    DecisionClass
}
