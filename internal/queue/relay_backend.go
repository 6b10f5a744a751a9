package queue

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"scaling_probe/internal/core"
	"scaling_probe/pkg/config"
	"scaling_probe/pkg/redis_helpers"
)

const scriptHeader = `import base64, redis
r = redis.Redis(host=%s, port=%d, db=%d, password=%s)
`

// RelayBackend reaches the queue database through a workload that can see it,
// by running inline scripts with the redis client installed in that image.
// Values travel base64 encoded in both directions, so nothing in a payload
// has to be quoted for the remote interpreter.
type RelayBackend struct {
	relay     core.CommandRelay
	redisConf config.RedisConf
}

func NewRelayBackend(relay core.CommandRelay, redisConf config.RedisConf) *RelayBackend {
	return &RelayBackend{
		relay:     relay,
		redisConf: redisConf,
	}
}

func (driver *RelayBackend) Name() string {
	return fmt.Sprintf("relay://%s -> %s", driver.relay.Target(), redis_helpers.Address(driver.redisConf))
}

func (driver *RelayBackend) script(body string) string {
	password := "None"
	if driver.redisConf.Password != "" {
		password = pyQuote(driver.redisConf.Password)
	}

	return fmt.Sprintf(scriptHeader, pyQuote(driver.redisConf.Host), driver.redisConf.Port, driver.redisConf.Db, password) + body
}

func (driver *RelayBackend) run(ctx context.Context, command, body string) (string, error) {
	out, err := driver.relay.Run(ctx, driver.script(body))
	if err != nil {
		return "", fmt.Errorf("%w: %s via %s: %w", core.ErrConnectivity, command, driver.relay.Target(), err)
	}

	return lastLine(out), nil
}

func (driver *RelayBackend) runInt(ctx context.Context, command, body string) (int64, error) {
	out, err := driver.run(ctx, command, body)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s returned %q", core.ErrConnectivity, command, out)
	}

	return n, nil
}

func (driver *RelayBackend) Ping(ctx context.Context) error {
	out, err := driver.run(ctx, "ping", "print(r.ping())\n")
	if err != nil {
		return err
	}

	if out != "True" {
		return fmt.Errorf("%w: ping returned %q", core.ErrConnectivity, out)
	}

	return nil
}

func (driver *RelayBackend) LPush(ctx context.Context, key string, value []byte) (int64, error) {
	logrus.Tracef("relayed LPUSH %s (%d bytes)", key, len(value))

	body := fmt.Sprintf("print(r.lpush(%s, base64.b64decode(%s)))\n", pyQuote(key), pyQuote(base64.StdEncoding.EncodeToString(value)))
	return driver.runInt(ctx, "lpush", body)
}

func (driver *RelayBackend) RPop(ctx context.Context, key string) ([]byte, bool, error) {
	logrus.Tracef("relayed RPOP %s", key)

	body := fmt.Sprintf("v = r.rpop(%s)\nprint('-' if v is None else '+' + base64.b64encode(v).decode())\n", pyQuote(key))

	out, err := driver.run(ctx, "rpop", body)
	if err != nil {
		return nil, false, err
	}

	switch {
	case out == "-":
		return nil, false, nil
	case strings.HasPrefix(out, "+"):
		value, err := base64.StdEncoding.DecodeString(out[1:])
		if err != nil {
			return nil, false, fmt.Errorf("%w: rpop returned undecodable value: %v", core.ErrConnectivity, err)
		}
		return value, true, nil
	default:
		return nil, false, fmt.Errorf("%w: rpop returned %q", core.ErrConnectivity, out)
	}
}

func (driver *RelayBackend) LLen(ctx context.Context, key string) (int64, error) {
	return driver.runInt(ctx, "llen", fmt.Sprintf("print(r.llen(%s))\n", pyQuote(key)))
}

func (driver *RelayBackend) Del(ctx context.Context, key string) (int64, error) {
	logrus.Tracef("relayed DEL %s", key)

	return driver.runInt(ctx, "del", fmt.Sprintf("print(r.delete(%s))\n", pyQuote(key)))
}

// pyQuote produces a Python string literal. strconv.Quote output is a valid
// Python literal for printable input; \x and \u escapes coincide.
func pyQuote(s string) string {
	return strconv.Quote(s)
}

func lastLine(out string) string {
	out = strings.TrimSpace(out)
	if idx := strings.LastIndexByte(out, '\n'); idx >= 0 {
		return strings.TrimSpace(out[idx+1:])
	}

	return out
}
