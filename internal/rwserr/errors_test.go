package rwserr

import (
	"errors"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindInvalid:  "InvalidArgument",
		KindProtocol: "ProtocolError",
		KindTimeout:  "TimeoutError",
		KindIO:       "IoError",
		KindLogic:    "LogicError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestProtocolCarriesContext(t *testing.T) {
	err := Protocol(HTTPContext{
		Method: "POST", URI: "/subscription", Status: 500, Reason: "Internal Server Error",
	}, "unexpected status")

	if err.Kind != KindProtocol {
		t.Fatalf("Kind = %v, want KindProtocol", err.Kind)
	}
	if err.Method != "POST" || err.URI != "/subscription" || err.Status != 500 {
		t.Errorf("context not preserved: %+v", err)
	}
	if err.Error() == "" {
		t.Error("Error() message is empty")
	}
}

func TestKindOf(t *testing.T) {
	err := Logic("mastership count would go negative")
	kind, ok := KindOf(err)
	if !ok || kind != KindLogic {
		t.Fatalf("KindOf = (%v, %v), want (KindLogic, true)", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain error")); ok {
		t.Error("KindOf matched a non-rwserr error")
	}
}

func TestTimeoutWrapsCause(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := Timeout(cause, "heartbeat missed")
	if !errors.Is(err, cause) {
		t.Error("Timeout() did not wrap cause for errors.Is")
	}
}
