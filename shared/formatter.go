package shared

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const MaxSummaryLen = 256

// GetHostName returns the lowercase host of a URL with its port, unless the port is the scheme's default.
// The port is part of a node's identity.
func GetHostName(someUrl string) (string, error) {
	var parsedUrl *url.URL
	var urlError error
	parsedUrl, urlError = url.Parse(someUrl)
	if urlError != nil {
		return "", fmt.Errorf("failed to parse URL '%s': %v", someUrl, urlError)
	}
	if parsedUrl.Hostname() == "" {
		return "", fmt.Errorf("URL '%s' has no host", someUrl)
	}
	host := strings.ToLower(parsedUrl.Host)
	switch port := parsedUrl.Port(); {
	case port == "80" && strings.EqualFold(parsedUrl.Scheme, "http"),
		port == "443" && strings.EqualFold(parsedUrl.Scheme, "https"):
		host = strings.TrimSuffix(host, ":"+port)
	}
	return host, nil
}

// GetBaseUrl returns scheme://host[:port] of a URL, or "" if it cannot be parsed.
func GetBaseUrl(someUrl string) string {
	parsedUrl, err := url.Parse(someUrl)
	if err != nil || parsedUrl.Host == "" {
		return ""
	}
	scheme := parsedUrl.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return strings.ToLower(scheme + "://" + parsedUrl.Host)
}

// NormalizeHost accepts either a bare host ("node.example", "localhost:8000") or a URL and returns
// the lowercase host, keeping a port the same way GetHostName does.
func NormalizeHost(hostOrUrl string) string {
	hostOrUrl = strings.TrimSpace(hostOrUrl)
	if hostOrUrl == "" {
		return ""
	}
	if strings.Contains(hostOrUrl, "://") {
		if host, err := GetHostName(hostOrUrl); err == nil {
			return host
		}
		return ""
	}
	host := strings.TrimRight(hostOrUrl, "/")
	if ix := strings.IndexByte(host, '/'); ix >= 0 {
		host = host[:ix]
	}
	return strings.ToLower(host)
}

// InboxUrl appends /inbox to an author id, collapsing a trailing slash.
func InboxUrl(authorId string) string {
	return strings.TrimRight(authorId, "/") + "/inbox"
}

func TruncateWithEllipsis(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// https://stackoverflow.com/a/73939904/7479498
	lastSpaceIx := maxLen
	len := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			lastSpaceIx = i
		}
		len++
		if len > maxLen {
			return text[:lastSpaceIx] + "…"
		}
	}
	// If here, string is shorter or equal to maxLen
	return text
}
