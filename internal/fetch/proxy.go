package fetch

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc builds the transport proxy function. Explicit settings
// override the standard environment variables; noProxy takes the usual
// comma-separated list of hosts, domain suffixes, and CIDR ranges to
// connect to directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" && noProxy == "" {
		return http.ProxyFromEnvironment
	}

	env := httpproxy.FromEnvironment()
	if httpProxy != "" {
		env.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		env.HTTPSProxy = httpsProxy
	}
	if noProxy != "" {
		env.NoProxy = noProxy
	}

	proxy := env.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}
}
