// Package result decodes a raw HTTP response into the XML-fragment
// document shape RWS responses use, lazily parsing the body only when
// a caller actually walks it.
package result

import (
	"sync"

	"github.com/beevik/etree"

	"github.com/streamspace-dev/rws/internal/rwserr"
)

// Result is the outcome of a single RWS HTTP request.
type Result struct {
	Status int
	Reason string
	Header map[string][]string
	Body   []byte

	// Method and URI are carried along purely so Expect() can build a
	// useful ProtocolError without its caller threading them through.
	Method string
	URI    string

	once sync.Once
	doc  *etree.Document
	err  error
}

// Document lazily parses Body as XML and caches the result. Every call
// on the same Result returns the same *etree.Document; callers must not
// mutate it, and must not retain Elements past the Result's lifetime.
func (r *Result) Document() (*etree.Document, error) {
	r.once.Do(func() {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(r.Body); err != nil {
			r.err = rwserr.Protocol(r.httpContext(), "parsing response body: %v", err)
			return
		}
		r.doc = doc
	})
	return r.doc, r.err
}

// Items returns the <li> elements under /html/body/div/ul, the common
// shape of RWS list responses (subscribed resources, events, file
// listings).
func (r *Result) Items() ([]*etree.Element, error) {
	doc, err := r.Document()
	if err != nil {
		return nil, err
	}
	root := doc.FindElement("/html/body/div/ul")
	if root == nil {
		return nil, nil
	}
	return root.SelectElements("li"), nil
}

// Expect raises a ProtocolError unless Status is one of want.
func (r *Result) Expect(want ...int) error {
	for _, w := range want {
		if r.Status == w {
			return nil
		}
	}
	return rwserr.Protocol(r.httpContext(), "unexpected status")
}

// HTTPContext builds the rwserr.HTTPContext describing this Result, for
// callers that need to raise their own ProtocolError after inspecting
// the decoded body (e.g. a missing expected field).
func (r *Result) HTTPContext() rwserr.HTTPContext {
	return r.httpContext()
}

func (r *Result) httpContext() rwserr.HTTPContext {
	return rwserr.HTTPContext{
		Method:   r.Method,
		URI:      r.URI,
		Status:   r.Status,
		Reason:   r.Reason,
		RespBody: string(r.Body),
	}
}
