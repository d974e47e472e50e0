// Package fingerprint builds HTTP transports whose TLS ClientHello mimics a
// real browser. Listings sites front aggressive bot protection; matching the
// TLS fingerprint to the browser-like header set keeps fetches from being
// flagged at the handshake layer.
package fingerprint

import (
	"context"
	"fmt"
	"net"
	"net/http"

	utls "github.com/refraction-networking/utls"
)

// Profile represents a recognized TLS fingerprint profile.
type Profile string

const (
	ProfileChrome  Profile = "chrome"
	ProfileFirefox Profile = "firefox"
	ProfileGo      Profile = "go" // standard go TLS, used by tests and the model client
)

// Transport returns an http.RoundTripper configured with the specified
// TLS fingerprint profile. The "go" profile returns a plain cloned
// http.Transport; the browser profiles perform the handshake through
// utls.UClient.
func Transport(p Profile) (http.RoundTripper, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if p == ProfileGo {
		return transport, nil
	}

	var clientHelloID utls.ClientHelloID
	switch p {
	case ProfileChrome:
		clientHelloID = utls.HelloChrome_Auto
	case ProfileFirefox:
		clientHelloID = utls.HelloFirefox_Auto
	default:
		return nil, fmt.Errorf("unknown fingerprint profile %q", p)
	}

	transport.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		tcpConn, err := transport.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr // fallback if no port
		}

		uConn := utls.UClient(tcpConn, &utls.Config{ServerName: host}, clientHelloID)
		if err := uConn.HandshakeContext(ctx); err != nil {
			_ = tcpConn.Close()
			return nil, fmt.Errorf("utls handshake failed: %w", err)
		}

		return uConn, nil
	}

	return transport, nil
}
