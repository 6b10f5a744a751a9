package envelope

// Field layout of a Celery protocol 2 task message wrapped in a Kombu
// transport envelope, as the Redis transport stores it in the list.

const (
	ContentEncoding = "utf-8"
	ContentType     = "application/json"
	BodyEncoding    = "base64"
	Lang            = "py"

	DefaultOrigin       = "test-script@keda-test"
	DefaultRoutingKey   = "celery"
	PersistentDelivery  = 2
	DefaultKwargsRepr   = "{}"
	defaultExchangeName = ""
)

type Embed struct {
	Callbacks any `json:"callbacks"`
	Errbacks  any `json:"errbacks"`
	Chain     any `json:"chain"`
	Chord     any `json:"chord"`
}

type Headers struct {
	Lang       string      `json:"lang"`
	Task       string      `json:"task"`
	ID         string      `json:"id"`
	Shadow     *string     `json:"shadow"`
	ETA        *string     `json:"eta"`
	Expires    *string     `json:"expires"`
	Group      *string     `json:"group"`
	GroupIndex *int        `json:"group_index"`
	Retries    int         `json:"retries"`
	TimeLimit  [2]*float64 `json:"timelimit"`
	RootID     string      `json:"root_id"`
	ParentID   *string     `json:"parent_id"`
	ArgsRepr   string      `json:"argsrepr"`
	KwargsRepr string      `json:"kwargsrepr"`
	Origin     string      `json:"origin"`
}

type DeliveryInfo struct {
	Exchange   string `json:"exchange"`
	RoutingKey string `json:"routing_key"`
}

type Properties struct {
	CorrelationID string       `json:"correlation_id"`
	ReplyTo       *string      `json:"reply_to"`
	DeliveryMode  int          `json:"delivery_mode"`
	DeliveryInfo  DeliveryInfo `json:"delivery_info"`
	Priority      int          `json:"priority"`
	BodyEncoding  string       `json:"body_encoding"`
	DeliveryTag   *string      `json:"delivery_tag"`
}

type Message struct {
	Body            string     `json:"body"`
	ContentEncoding string     `json:"content-encoding"`
	ContentType     string     `json:"content-type"`
	Headers         Headers    `json:"headers"`
	Properties      Properties `json:"properties"`
}

// Decoded is a message together with its unpacked body.
type Decoded struct {
	Message Message
	Args    []any
	Kwargs  map[string]any
	Embed   Embed
}

func (d Decoded) Task() string {
	return d.Message.Headers.Task
}

func (d Decoded) ID() string {
	return d.Message.Headers.ID
}
