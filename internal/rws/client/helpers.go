package client

import (
	"strings"

	"github.com/streamspace-dev/rws/internal/rws/result"
	"github.com/streamspace-dev/rws/internal/rwserr"
)

// firstSpanText returns the text of the first <span class="*-{class}">
// (or exactly class) element found anywhere in res's parsed document.
// RWS encodes each scalar field of a resource as its own <span>, a
// shape shared by every panel/IO/RAPID state response.
func firstSpanText(res *result.Result, class string) (string, error) {
	doc, err := res.Document()
	if err != nil {
		return "", err
	}
	for _, el := range doc.FindElements("//span") {
		attr := el.SelectAttr("class")
		if attr == nil {
			continue
		}
		if attr.Value == class || strings.HasSuffix(attr.Value, "-"+class) {
			return el.Text(), nil
		}
	}
	return "", rwserr.Protocol(res.HTTPContext(), "field %q not found in response", class)
}
