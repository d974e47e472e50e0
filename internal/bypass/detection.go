// Package bypass recognizes bot-protection block pages so that fetch
// failures can be logged with the vendor that rejected the request.
package bypass

import (
	"bytes"
	"net/http"
	"strings"
)

// Detector examines a blocked response and reports whether a bot
// protection vendor produced it.
type Detector func(status int, header http.Header, body []byte) (detected bool, source string)

// DefaultDetectors returns the standard list of bot protection detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		detectCloudflare,
		detectAkamai,
		detectDataDome,
	}
}

// Identify runs the response through all default detectors and names the
// first vendor that matches. The second return is false when no vendor is
// recognized.
func Identify(status int, header http.Header, body []byte) (string, bool) {
	for _, d := range DefaultDetectors() {
		if detected, source := d(status, header, body); detected {
			return source, true
		}
	}
	return "", false
}

// detectCloudflare looks for common Cloudflare challenge/block signatures.
func detectCloudflare(status int, header http.Header, body []byte) (bool, string) {
	// 403 and 503 are the usual CF challenge statuses
	if status != http.StatusForbidden && status != http.StatusServiceUnavailable {
		return false, ""
	}

	if strings.Contains(strings.ToLower(header.Get("Server")), "cloudflare") {
		return true, "Cloudflare"
	}

	if bytes.Contains(body, []byte("cf-browser-verification")) ||
		bytes.Contains(body, []byte("cf-turnstile")) ||
		bytes.Contains(body, []byte("Attention Required! | Cloudflare")) {
		return true, "Cloudflare"
	}
	return false, ""
}

// detectAkamai looks for Akamai Bot Manager signatures.
func detectAkamai(status int, header http.Header, body []byte) (bool, string) {
	if status != http.StatusForbidden {
		return false, ""
	}

	if strings.Contains(strings.ToLower(header.Get("Server")), "akamai") {
		return true, "Akamai"
	}

	// Akamai often serves a generic "Reference #" block page
	if bytes.Contains(body, []byte("Reference #")) && bytes.Contains(body, []byte("Access Denied")) {
		return true, "Akamai"
	}
	return false, ""
}

// detectDataDome looks for DataDome challenge/block signatures.
func detectDataDome(status int, header http.Header, body []byte) (bool, string) {
	if status != http.StatusForbidden {
		return false, ""
	}

	if strings.Contains(strings.ToLower(header.Get("Server")), "datadome") {
		return true, "DataDome"
	}
	if header.Get("X-DataDome") != "" || header.Get("X-DataDome-Response") != "" {
		return true, "DataDome"
	}
	if bytes.Contains(body, []byte("geo.captcha-delivery.com")) {
		return true, "DataDome"
	}
	return false, ""
}
