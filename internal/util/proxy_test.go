package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:8080", "http://secure-proxy:8443", "internal.example, .corp, 10.0.0.0/8, 192.168.1.5, mirror.example:8443")

	tests := []struct {
		url  string
		want string
	}{
		{"http://en.wikipedia.org/", "http://proxy:8080"},
		{"https://en.wikipedia.org/", "http://secure-proxy:8443"},
		{"https://internal.example/", ""},
		{"https://api.internal.example/", ""},
		{"https://wiki.corp/", ""},
		{"http://10.1.2.3/wiki/Acme", ""},
		{"http://11.1.2.3/wiki/Acme", "http://proxy:8080"},
		{"http://192.168.1.5/wiki/Acme", ""},
		{"https://mirror.example:8443/wiki/Acme", ""},
		{"https://mirror.example/wiki/Acme", "http://secure-proxy:8443"},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("proxy(%s) failed: %v", tt.url, err)
		}
		gotStr := ""
		if got != nil {
			gotStr = got.String()
		}
		if gotStr != tt.want {
			t.Errorf("proxy(%s) = %q, want %q", tt.url, gotStr, tt.want)
		}
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTPProxy(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:8080", "", "")

	req, _ := http.NewRequest(http.MethodGet, "https://en.wikipedia.org/", nil)
	got, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy failed: %v", err)
	}
	if got == nil || got.String() != "http://proxy:8080" {
		t.Errorf("proxy() = %v, want http://proxy:8080", got)
	}
}
