package resource

import (
	"testing"

	"github.com/streamspace-dev/rws/internal/rws/catalog"
)

func TestURIs(t *testing.T) {
	if got, want := IOSignal{Name: "DO1"}.URI(), "/rw/iosystem/signals/DO1"; got != want {
		t.Errorf("IOSignal.URI() = %q, want %q", got, want)
	}
	if got, want := (RAPIDSymbol{Task: "T_ROB1", Module: "Module1", Name: "reg1"}).URI(),
		"/rw/rapid/symbol/data/RAPID/T_ROB1/Module1/reg1"; got != want {
		t.Errorf("RAPIDSymbol.URI() = %q, want %q", got, want)
	}
	if got, want := (ControllerState{}).URI(), "/rw/panel/ctrlstate"; got != want {
		t.Errorf("ControllerState.URI() = %q, want %q", got, want)
	}
	if got, want := (File{Directory: "HOME", Filename: "prog.mod"}).URI(),
		"/fileservice/HOME/prog.mod"; got != want {
		t.Errorf("File.URI() = %q, want %q", got, want)
	}

	mu := MechanicalUnit{Name: "ROB_1"}
	if got, want := mu.RobTargetURI(catalog.CoordinateWorld, "tool0", "wobj0"),
		"/rw/motionsystem/mechunits/ROB_1/robtarget?coordinate=World&tool=tool0&wobj=wobj0"; got != want {
		t.Errorf("MechanicalUnit.RobTargetURI() = %q, want %q", got, want)
	}
}
