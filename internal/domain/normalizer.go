// Package domain extracts and canonicizes registrable domains from
// arbitrary URL or hostname strings. Every merchant resolution passes
// through ExtractRegistrableDomain; nothing downstream accepts a raw URL.
package domain

import (
	"net"
	"net/url"
	"strings"
)

// dangerousSchemes are rejected outright. A string beginning with any of
// these never yields a domain.
var dangerousSchemes = []string{
	"javascript:",
	"data:",
	"file:",
	"chrome:",
	"about:",
	"vbscript:",
	"blob:",
}

// ExtractRegistrableDomain normalizes an arbitrary input string to a
// registrable domain: lower-cased, www-stripped, no scheme, no path. The
// second return is false when the input yields no acceptable domain.
//
// Registrable here is the simple www-strip + dot-count heuristic, not a
// public-suffix-list lookup.
func ExtractRegistrableDomain(raw string) (string, bool) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return "", false
	}

	lower := strings.ToLower(input)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}

	candidate := input
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	if u, err := url.Parse(candidate); err == nil && u.Hostname() != "" {
		if host, ok := acceptHost(u.Hostname()); ok {
			return host, true
		}
		return "", false
	}

	return manualExtract(lower)
}

// acceptHost applies the shared host rules: lower-case, strip leading www.,
// require a dot, reject IP literals.
func acceptHost(host string) (string, bool) {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")

	if host == "" || !strings.Contains(host, ".") {
		return "", false
	}
	if net.ParseIP(host) != nil {
		return "", false
	}
	// Bracketed IPv6 survives some parse paths without brackets stripped.
	if strings.Contains(host, ":") {
		return "", false
	}
	return host, true
}

// manualExtract is the fallback for inputs url.Parse cannot handle: strip
// scheme, www., and everything after the first path/query/fragment
// delimiter, then apply the same acceptance rules.
func manualExtract(lower string) (string, bool) {
	s := lower
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return "", false
	}
	return acceptHost(s)
}

// DisplayName derives a human-readable merchant name from a domain, used
// when no better name is available ("best-buy.example.com" -> "Best Buy").
func DisplayName(domain string) string {
	base := domain
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return domain
	}
	return strings.Join(words, " ")
}
