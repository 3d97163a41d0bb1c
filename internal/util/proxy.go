package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc creates a proxy function from explicit proxy URLs and a
// NO_PROXY list (hosts, domain suffixes, IPs, CIDR ranges, optional ports).
// HTTPS requests use httpProxy when httpsProxy is empty. Without any proxy URL
// it falls back to the environment.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    noProxy,
	}
	if cfg.HTTPSProxy == "" {
		cfg.HTTPSProxy = httpProxy
	}
	if cfg.HTTPProxy == "" {
		cfg.HTTPProxy = httpproxy.FromEnvironment().HTTPProxy
	}

	proxyFor := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxyFor(req.URL)
	}
}

// NewTransport returns an HTTP transport using the given proxy settings
func NewTransport(httpProxy, httpsProxy, noProxy string) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = NewProxyFunc(httpProxy, httpsProxy, noProxy)
	return transport
}
