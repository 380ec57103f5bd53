package subscribe

import (
	"testing"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// ioEventBody is scenario S2's literal fixture: an I/O signal event
// with the signal name carried in the child <a href> and its new value
// in a bare class="lvalue" span.
const ioEventBody = `<html><body><div><ul><li class="ios-signalstate-ev">` +
	`<a href="/rw/iosystem/signals/DO_1;state"/><span class="lvalue">1</span>` +
	`</li></ul></div></body></html>`

// rapidEventBody is scenario S3's literal fixture.
const rapidEventBody = `<html><body><div><ul><li class="rap-ctrlexecstate-ev">` +
	`<span class="ctrlexecstate">running</span>` +
	`</li></ul></div></body></html>`

// unknownEventBody is scenario S4's literal fixture.
const unknownEventBody = `<html><body><div><ul><li class="bogus-ev"></li></ul></div></body></html>`

func TestParseEventsIOSignal(t *testing.T) {
	events, err := ParseEvents([]byte(ioEventBody))
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("ParseEvents() = %d events, want 1", len(events))
	}
	ev, ok := events[0].(IOSignalStateEvent)
	if !ok {
		t.Fatalf("events[0] = %#v, want IOSignalStateEvent", events[0])
	}
	if ev.Signal != "DO_1" {
		t.Errorf("Signal = %q, want DO_1", ev.Signal)
	}
	if ev.Value != "1" {
		t.Errorf("Value = %q, want 1", ev.Value)
	}
}

func TestParseEventsRAPIDState(t *testing.T) {
	events, err := ParseEvents([]byte(rapidEventBody))
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("ParseEvents() = %d events, want 1", len(events))
	}
	ev, ok := events[0].(RAPIDExecutionStateEvent)
	if !ok {
		t.Fatalf("events[0] = %#v, want RAPIDExecutionStateEvent", events[0])
	}
	if ev.State != catalog.RAPIDExecutionStateRunning {
		t.Errorf("State = %v, want running", ev.State)
	}
}

func TestParseEventsUnknownClass(t *testing.T) {
	_, err := ParseEvents([]byte(unknownEventBody))
	if err == nil {
		t.Fatal("ParseEvents() = nil error, want ProtocolError for unrecognized class")
	}
	if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindProtocol {
		t.Errorf("ParseEvents() error kind = %v, want KindProtocol", kind)
	}
}

func TestParseEventsControllerState(t *testing.T) {
	const body = `<html><body><div><ul><li class="ctrlstate-ev">` +
		`<span class="ctrlstate">motoron</span>` +
		`</li></ul></div></body></html>`

	events, err := ParseEvents([]byte(body))
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	ev, ok := events[0].(ControllerStateEvent)
	if !ok {
		t.Fatalf("events[0] = %#v, want ControllerStateEvent", events[0])
	}
	if ev.State != catalog.ControllerStateMotorOn {
		t.Errorf("State = %v, want motoron", ev.State)
	}
}

func TestParseEventsOperationMode(t *testing.T) {
	const body = `<html><body><div><ul><li class="opmode-ev">` +
		`<span class="opmode">AUTO</span>` +
		`</li></ul></div></body></html>`

	events, err := ParseEvents([]byte(body))
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	ev, ok := events[0].(OperationModeEvent)
	if !ok {
		t.Fatalf("events[0] = %#v, want OperationModeEvent", events[0])
	}
	if ev.Mode != catalog.OperationModeAuto {
		t.Errorf("Mode = %v, want AUTO", ev.Mode)
	}
}

func TestParseEventsIOSignalMissingHrefPrefix(t *testing.T) {
	const body = `<html><body><div><ul><li class="ios-signalstate-ev">` +
		`<a href="/some/other/path"/><span class="lvalue">1</span>` +
		`</li></ul></div></body></html>`

	_, err := ParseEvents([]byte(body))
	if err == nil {
		t.Fatal("ParseEvents() = nil error, want ProtocolError for malformed href")
	}
	if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindProtocol {
		t.Errorf("ParseEvents() error kind = %v, want KindProtocol", kind)
	}
}
