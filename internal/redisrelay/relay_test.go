package redisrelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamspace-dev/rws/internal/rws/subscribe"
)

func TestNewInvalidURL(t *testing.T) {
	_, err := New("not-a-url", "rws.events")
	assert.Error(t, err)
}

func TestHandlerSwallowsPublishFailure(t *testing.T) {
	// Point at a port nothing listens on; Publish will fail and the
	// handler must not panic or propagate the error.
	r, err := New("redis://127.0.0.1:1", "rws.events")
	require.NoError(t, err)
	defer r.Close()

	handler := r.Handler()
	assert.NotPanics(t, func() {
		handler(subscribe.IOSignalStateEvent{Signal: "DO1", Value: "1"})
	})
}
