package transport

import (
	"strings"
	"testing"
)

func TestParseDigestChallenge(t *testing.T) {
	header := `Digest realm="RobotWare", nonce="abc123", qop="auth", opaque="xyz"`
	c, ok := parseDigestChallenge(header)
	if !ok {
		t.Fatal("parseDigestChallenge() ok = false")
	}
	if c.realm != "RobotWare" || c.nonce != "abc123" || c.qop != "auth" || c.opaque != "xyz" {
		t.Errorf("parsed challenge = %+v", c)
	}
}

func TestParseDigestChallengeNotDigest(t *testing.T) {
	if _, ok := parseDigestChallenge("Basic realm=\"x\""); ok {
		t.Error("parseDigestChallenge() matched a non-Digest header")
	}
}

func TestAuthorizeAdvancesNonceCount(t *testing.T) {
	auth := newDigestAuthenticator("Default User", "robotics")
	challenge := &digestChallenge{realm: "RobotWare", nonce: "n1", qop: "auth"}

	h1 := auth.authorize("GET", "/rw/panel/ctrlstate", challenge)
	h2 := auth.authorize("GET", "/rw/panel/ctrlstate", challenge)

	if h1 == h2 {
		t.Error("authorize() produced identical headers for successive requests on the same nonce; nc should advance")
	}
	for _, want := range []string{`username="Default User"`, `realm="RobotWare"`, `nonce="n1"`} {
		if !strings.Contains(h1, want) {
			t.Errorf("authorize() header missing %q: %s", want, h1)
		}
	}
}
