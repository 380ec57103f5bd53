package result

import (
	"testing"

	"github.com/streamspace-dev/rws/internal/rwserr"
)

const sampleBody = `<?xml version="1.0"?>
<html><body><div class="state">
<ul class="signals">
<li class="ios-signal-li" title="DO1"><span class="name">DO1</span></li>
<li class="ios-signal-li" title="DO2"><span class="name">DO2</span></li>
</ul>
</div></body></html>`

func TestDocumentCachedAndItems(t *testing.T) {
	r := &Result{Status: 200, Body: []byte(sampleBody)}

	doc1, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	doc2, _ := r.Document()
	if doc1 != doc2 {
		t.Error("Document() did not cache the parsed document")
	}

	items, err := r.Items()
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Items() = %d elements, want 2", len(items))
	}
}

func TestDocumentParseError(t *testing.T) {
	r := &Result{Status: 200, Body: []byte("not xml <<<")}
	if _, err := r.Document(); err == nil {
		t.Fatal("Document() = nil error, want parse error")
	} else if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindProtocol {
		t.Errorf("Document() error kind = %v, want KindProtocol", kind)
	}
}

func TestExpect(t *testing.T) {
	r := &Result{Status: 201, Method: "POST", URI: "/subscription"}
	if err := r.Expect(200, 201); err != nil {
		t.Errorf("Expect(200, 201) on 201 = %v, want nil", err)
	}
	if err := r.Expect(200); err == nil {
		t.Error("Expect(200) on 201 = nil, want ProtocolError")
	} else if kind, ok := rwserr.KindOf(err); !ok || kind != rwserr.KindProtocol {
		t.Errorf("Expect error kind = %v, want KindProtocol", kind)
	}
}
