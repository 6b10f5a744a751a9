package envelope

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"scaling_probe/internal/core"
)

type Option func(*core.WorkItem)

// WithCorrelationID pins the message id. The same value is used as the
// correlation id and the root id.
func WithCorrelationID(id string) Option {
	return func(w *core.WorkItem) {
		*w = core.NewWorkItemWithID(id, w.TaskName, w.Args, w.Metadata)
	}
}

func WithOrigin(origin string) Option {
	return func(w *core.WorkItem) { w.Metadata.Origin = origin }
}

func WithRoutingKey(routingKey string) Option {
	return func(w *core.WorkItem) { w.Metadata.RoutingKey = routingKey }
}

func WithRetries(retries int) Option {
	return func(w *core.WorkItem) { w.Metadata.Retries = retries }
}

func WithTimeLimit(soft, hard *float64) Option {
	return func(w *core.WorkItem) { w.Metadata.TimeLimit = [2]*float64{soft, hard} }
}

func WithPriority(priority int) Option {
	return func(w *core.WorkItem) { w.Metadata.Priority = priority }
}

// Encode builds a work item for taskName and serializes it.
func Encode(taskName string, args []any, opts ...Option) ([]byte, error) {
	item := core.NewWorkItem(taskName, args, core.EnvelopeMetadata{})
	for _, opt := range opts {
		opt(&item)
	}

	return EncodeWorkItem(item)
}

// EncodeWorkItem serializes item as the outer JSON envelope whose body is the
// base64 of the JSON task tuple (args, kwargs, embed).
func EncodeWorkItem(item core.WorkItem) ([]byte, error) {
	msg, err := BuildMessage(item)
	if err != nil {
		return nil, err
	}

	data, err := marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: envelope of task %s: %v", core.ErrEncoding, item.ID(), err)
	}

	return data, nil
}

func BuildMessage(item core.WorkItem) (Message, error) {
	if item.TaskName == "" {
		return Message{}, fmt.Errorf("%w: empty task name", core.ErrEncoding)
	}

	args := item.Args
	if args == nil {
		args = []any{}
	}
	for i, arg := range args {
		if err := checkValue(arg); err != nil {
			return Message{}, fmt.Errorf("%w: argument %d of task %s: %v", core.ErrEncoding, i, item.TaskName, err)
		}
	}

	kwargs := item.Kwargs
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	if err := checkValue(kwargs); err != nil {
		return Message{}, fmt.Errorf("%w: keyword arguments of task %s: %v", core.ErrEncoding, item.TaskName, err)
	}

	md := item.Metadata
	body, err := marshal([]any{args, kwargs, Embed{
		Callbacks: md.Callbacks,
		Errbacks:  md.Errbacks,
		Chain:     md.Chain,
		Chord:     md.Chord,
	}})
	if err != nil {
		return Message{}, fmt.Errorf("%w: body of task %s: %v", core.ErrEncoding, item.TaskName, err)
	}

	origin := md.Origin
	if origin == "" {
		origin = DefaultOrigin
	}
	routingKey := md.RoutingKey
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}
	deliveryMode := md.DeliveryMode
	if deliveryMode == 0 {
		deliveryMode = PersistentDelivery
	}

	return Message{
		Body:            base64.StdEncoding.EncodeToString(body),
		ContentEncoding: ContentEncoding,
		ContentType:     ContentType,
		Headers: Headers{
			Lang:       Lang,
			Task:       item.TaskName,
			ID:         item.ID(),
			Retries:    md.Retries,
			TimeLimit:  md.TimeLimit,
			RootID:     item.ID(),
			ArgsRepr:   ArgsRepr(args),
			KwargsRepr: DefaultKwargsRepr,
			Origin:     origin,
		},
		Properties: Properties{
			CorrelationID: item.CorrelationID(),
			DeliveryMode:  deliveryMode,
			DeliveryInfo: DeliveryInfo{
				Exchange:   defaultExchangeName,
				RoutingKey: routingKey,
			},
			Priority:     md.Priority,
			BodyEncoding: BodyEncoding,
		},
	}, nil
}

// MarkerTaskName is the timestamp-derived name used for plain marker items.
func MarkerTaskName(now time.Time) string {
	return "keda_test_" + now.Format("20060102_150405")
}

// marshal is json.Marshal without HTML escaping, so '<', '>' and '&' in
// arguments stay readable in redis-cli output.
func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// checkValue rejects what encoding/json would either refuse or silently
// rewrite (invalid UTF-8 is replaced by U+FFFD and would not round trip).
func checkValue(v any) error {
	switch val := v.(type) {
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case string:
		if !utf8.ValidString(val) {
			return fmt.Errorf("invalid UTF-8 in %q", val)
		}
		return nil
	case float32:
		return checkFloat(float64(val))
	case float64:
		return checkFloat(val)
	case []string:
		for _, s := range val {
			if err := checkValue(s); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, elem := range val {
			if err := checkValue(elem); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for k, elem := range val {
			if err := checkValue(k); err != nil {
				return err
			}
			if err := checkValue(elem); err != nil {
				return err
			}
		}
		return nil
	default:
		if _, err := json.Marshal(val); err != nil {
			return err
		}
		return nil
	}
}

func checkFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("unsupported float value %v", f)
	}
	return nil
}
