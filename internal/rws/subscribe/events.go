package subscribe

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// ioSignalHrefPrefix is the fixed portion of an I/O signal event's
// child <a href>, e.g. "/rw/iosystem/signals/DO_1;state".
const ioSignalHrefPrefix = "/rw/iosystem/signals/"

// ParseEvents walks the /html/body/div/ul/li nodes of a subscription
// payload (whether delivered over WebSocket or fetched via poll) and
// decodes each into a typed Event, in document order.
func ParseEvents(body []byte) ([]Event, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "parsing event payload: %v", err)
	}

	root := doc.FindElement("/html/body/div/ul")
	if root == nil {
		return nil, nil
	}

	var events []Event
	for _, li := range root.SelectElements("li") {
		ev, err := parseEvent(li, body)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseEvent dispatches a single <li> by its class attribute, the
// table in spec.md's event parsing section.
func parseEvent(li *etree.Element, body []byte) (Event, error) {
	class := li.SelectAttrValue("class", "")
	switch class {
	case "ios-signalstate-ev":
		return parseIOSignalStateEvent(li, body)
	case "rap-ctrlexecstate-ev":
		text, err := childSpanText(li, "ctrlexecstate", body)
		if err != nil {
			return nil, err
		}
		state, err := catalog.ParseRAPIDExecutionState(text)
		if err != nil {
			return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "parsing RAPID execution state %q: %v", text, err)
		}
		return RAPIDExecutionStateEvent{State: state}, nil
	case "ctrlstate-ev":
		text, err := childSpanText(li, "ctrlstate", body)
		if err != nil {
			return nil, err
		}
		state, err := catalog.ParseControllerState(text)
		if err != nil {
			return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "parsing controller state %q: %v", text, err)
		}
		return ControllerStateEvent{State: state}, nil
	case "opmode-ev":
		text, err := childSpanText(li, "opmode", body)
		if err != nil {
			return nil, err
		}
		mode, err := catalog.ParseOperationMode(text)
		if err != nil {
			return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "parsing operation mode %q: %v", text, err)
		}
		return OperationModeEvent{Mode: mode}, nil
	default:
		return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "unrecognized event class %q", class)
	}
}

// parseIOSignalStateEvent reads the child <a href> for the signal name
// and the child <span class="lvalue"> for its new value, per spec.md
// §4.7's extraction rule for ios-signalstate-ev.
func parseIOSignalStateEvent(li *etree.Element, body []byte) (Event, error) {
	a := li.FindElement(".//a")
	if a == nil {
		return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "ios-signalstate-ev missing child <a>")
	}
	signal, err := signalFromHref(a.SelectAttrValue("href", ""))
	if err != nil {
		return nil, rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "%v", err)
	}
	value, err := childSpanText(li, "lvalue", body)
	if err != nil {
		return nil, err
	}
	return IOSignalStateEvent{Signal: signal, Value: value}, nil
}

// signalFromHref extracts the signal name between ioSignalHrefPrefix
// and the trailing ";..." suffix of an I/O signal event's href, e.g.
// "/rw/iosystem/signals/DO_1;state" -> "DO_1".
func signalFromHref(href string) (string, error) {
	idx := strings.Index(href, ioSignalHrefPrefix)
	if idx < 0 {
		return "", fmt.Errorf("malformed signal href %q: missing %q prefix", href, ioSignalHrefPrefix)
	}
	rest := href[idx+len(ioSignalHrefPrefix):]
	if semi := strings.IndexByte(rest, ';'); semi >= 0 {
		rest = rest[:semi]
	}
	if rest == "" {
		return "", fmt.Errorf("malformed signal href %q: empty signal name", href)
	}
	return rest, nil
}

// childSpanText finds the first descendant <span class="class"> and
// returns its text, or a ProtocolError if no such child exists.
func childSpanText(li *etree.Element, class string, body []byte) (string, error) {
	for _, span := range li.FindElements(".//span") {
		if span.SelectAttrValue("class", "") == class {
			return span.Text(), nil
		}
	}
	return "", rwserr.Protocol(rwserr.HTTPContext{RespBody: string(body)}, "missing class=%q child", class)
}
