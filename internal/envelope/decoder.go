package envelope

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"scaling_probe/internal/core"
)

// Decode reverses EncodeWorkItem the way a Kombu consumer does: parse the
// outer envelope, base64-decode the body, then parse the task tuple.
func Decode(data []byte) (Decoded, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Decoded{}, fmt.Errorf("%w: envelope: %v", core.ErrEncoding, err)
	}

	if msg.Properties.BodyEncoding != "" && msg.Properties.BodyEncoding != BodyEncoding {
		return Decoded{}, fmt.Errorf("%w: unsupported body encoding %q", core.ErrEncoding, msg.Properties.BodyEncoding)
	}
	if msg.ContentType != ContentType {
		return Decoded{}, fmt.Errorf("%w: unsupported content type %q", core.ErrEncoding, msg.ContentType)
	}

	raw, err := base64.StdEncoding.DecodeString(msg.Body)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: body of %s: %v", core.ErrEncoding, msg.Headers.ID, err)
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return Decoded{}, fmt.Errorf("%w: body of %s: %v", core.ErrEncoding, msg.Headers.ID, err)
	}
	if len(tuple) != 3 {
		return Decoded{}, fmt.Errorf("%w: body of %s has %d elements, expected 3", core.ErrEncoding, msg.Headers.ID, len(tuple))
	}

	decoded := Decoded{Message: msg}
	if err := json.Unmarshal(tuple[0], &decoded.Args); err != nil {
		return Decoded{}, fmt.Errorf("%w: args of %s: %v", core.ErrEncoding, msg.Headers.ID, err)
	}
	if err := json.Unmarshal(tuple[1], &decoded.Kwargs); err != nil {
		return Decoded{}, fmt.Errorf("%w: kwargs of %s: %v", core.ErrEncoding, msg.Headers.ID, err)
	}
	if err := json.Unmarshal(tuple[2], &decoded.Embed); err != nil {
		return Decoded{}, fmt.Errorf("%w: embed of %s: %v", core.ErrEncoding, msg.Headers.ID, err)
	}

	if decoded.Args == nil {
		decoded.Args = []any{}
	}

	return decoded, nil
}
