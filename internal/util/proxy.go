package util

import (
	"net/http"
	"net/url"
)

// ProxyFunc builds an http.Transport proxy function from explicit proxy
// URLs, falling back to the standard environment variables when none are
// configured. The URLs are parsed once; a bad URL fails the first request
// that needs it.
func ProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	parse := func(raw string) (*url.URL, error) {
		if raw == "" {
			return nil, nil
		}
		return url.Parse(raw)
	}
	httpURL, httpErr := parse(httpProxy)
	httpsURL, httpsErr := parse(httpsProxy)

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return httpsURL, httpsErr
		}
		if httpProxy != "" {
			return httpURL, httpErr
		}
		return http.ProxyFromEnvironment(req)
	}
}
