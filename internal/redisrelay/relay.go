// Package redisrelay republishes subscription events onto a Redis
// pub/sub channel, the optional fan-out path for rwsctl watch
// --redis-url, grounded on the message-dispatch shape used elsewhere in
// this codebase to hand events off to an external system.
package redisrelay

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/streamspace-dev/rws/internal/rws/subscribe"
	"github.com/streamspace-dev/rws/internal/rwserr"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

// Relay publishes each received Event to a Redis channel as JSON.
type Relay struct {
	client  *redis.Client
	channel string
	log     *rwslog.Logger
}

// New builds a Relay from a redis:// URL and the channel to publish
// on.
func New(redisURL, channel string) (*Relay, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, rwserr.Invalid("parsing redis URL: %v", err)
	}
	return &Relay{
		client:  redis.NewClient(opts),
		channel: channel,
		log:     rwslog.New("redisrelay"),
	}, nil
}

// message is the wire shape published for each event: a class tag
// plus whichever fields its concrete Event type carries.
type message struct {
	Class  string            `json:"class"`
	Fields map[string]string `json:"fields"`
}

// toMessage flattens a typed subscribe.Event into the wire shape
// published to Redis.
func toMessage(ev subscribe.Event) message {
	switch ev := ev.(type) {
	case subscribe.IOSignalStateEvent:
		return message{Class: "ios-signalstate-ev", Fields: map[string]string{"signal": ev.Signal, "value": ev.Value}}
	case subscribe.RAPIDExecutionStateEvent:
		return message{Class: "rap-ctrlexecstate-ev", Fields: map[string]string{"state": ev.State.String()}}
	case subscribe.ControllerStateEvent:
		return message{Class: "ctrlstate-ev", Fields: map[string]string{"state": ev.State.String()}}
	case subscribe.OperationModeEvent:
		return message{Class: "opmode-ev", Fields: map[string]string{"mode": ev.Mode.String()}}
	default:
		return message{Class: "unknown"}
	}
}

// Handler adapts Relay into a subscribe.Handler for a Receiver.
// Publish failures are logged and swallowed: a relay outage should not
// bring down the underlying subscription.
func (r *Relay) Handler() subscribe.Handler {
	return func(ev subscribe.Event) {
		data, err := json.Marshal(toMessage(ev))
		if err != nil {
			r.log.Printf("marshaling event: %v", err)
			return
		}
		if err := r.client.Publish(context.Background(), r.channel, data).Err(); err != nil {
			r.log.Printf("publishing to %s: %v", r.channel, err)
		}
	}
}

// Close releases the underlying Redis client.
func (r *Relay) Close() error {
	return r.client.Close()
}
