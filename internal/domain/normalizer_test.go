package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRegistrableDomain(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "full https url",
			input:  "https://www.costco.com/cart",
			want:   "costco.com",
			wantOK: true,
		},
		{
			name:   "bare hostname",
			input:  "amazon.com",
			want:   "amazon.com",
			wantOK: true,
		},
		{
			name:   "bare hostname with www",
			input:  "www.target.com",
			want:   "target.com",
			wantOK: true,
		},
		{
			name:   "subdomain preserved",
			input:  "https://smile.amazon.com/deals",
			want:   "smile.amazon.com",
			wantOK: true,
		},
		{
			name:   "uppercase normalized",
			input:  "HTTPS://WWW.Netflix.COM/browse",
			want:   "netflix.com",
			wantOK: true,
		},
		{
			name:   "port stripped",
			input:  "shop.example.com:8443/checkout",
			want:   "shop.example.com",
			wantOK: true,
		},
		{
			name:   "query and fragment stripped",
			input:  "https://www.kroger.com/search?q=milk#results",
			want:   "kroger.com",
			wantOK: true,
		},
		{
			name:  "javascript scheme rejected",
			input: "javascript:alert(1)",
		},
		{
			name:  "data scheme rejected",
			input: "data:text/html;base64,PHNjcmlwdD4=",
		},
		{
			name:  "file scheme rejected",
			input: "file:///etc/passwd",
		},
		{
			name:  "chrome scheme rejected",
			input: "chrome://settings",
		},
		{
			name:  "about scheme rejected",
			input: "about:blank",
		},
		{
			name:  "vbscript scheme rejected",
			input: "vbscript:msgbox(1)",
		},
		{
			name:  "blob scheme rejected",
			input: "blob:https://evil.example/uuid",
		},
		{
			name:  "mixed case dangerous scheme rejected",
			input: "JavaScript:void(0)",
		},
		{
			name:  "ipv4 literal rejected",
			input: "https://192.168.1.10/admin",
		},
		{
			name:  "bare ipv4 rejected",
			input: "10.0.0.1",
		},
		{
			name:  "ipv6 literal rejected",
			input: "https://[2001:db8::1]/",
		},
		{
			name:  "hostname without dot rejected",
			input: "localhost",
		},
		{
			name:  "garbage with spaces rejected",
			input: "not a url at all",
		},
		{
			name:  "empty string rejected",
			input: "",
		},
		{
			name:  "whitespace only rejected",
			input: "   \t  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractRegistrableDomain(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRegistrableDomainIdempotent(t *testing.T) {
	// Feeding the output back in yields the same domain.
	inputs := []string{
		"https://www.costco.com/cart",
		"shop.example.co.uk",
		"www.grubhub.com",
	}
	for _, input := range inputs {
		first, ok := ExtractRegistrableDomain(input)
		assert.True(t, ok, input)
		second, ok := ExtractRegistrableDomain(first)
		assert.True(t, ok, first)
		assert.Equal(t, first, second)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"costco.com", "Costco"},
		{"best-buy.com", "Best Buy"},
		{"home_depot.com", "Home Depot"},
		{"doordash.com", "Doordash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayName(tt.domain))
	}
}
