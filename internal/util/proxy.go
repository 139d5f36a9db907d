// Package util holds HTTP politeness and transport helpers for the fetcher.
package util

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NewProxyFunc picks the configured proxy by scheme. With nothing
// configured it falls back to HTTP_PROXY/HTTPS_PROXY/NO_PROXY.
func NewProxyFunc(httpProxy, httpsProxy string) (func(*http.Request) (*url.URL, error), error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment, nil
	}

	var plain, secure *url.URL
	var err error
	if httpProxy != "" {
		if plain, err = url.Parse(httpProxy); err != nil {
			return nil, fmt.Errorf("parse http proxy: %w", err)
		}
	}
	if httpsProxy != "" {
		if secure, err = url.Parse(httpsProxy); err != nil {
			return nil, fmt.Errorf("parse https proxy: %w", err)
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && secure != nil {
			return secure, nil
		}
		if plain != nil {
			return plain, nil
		}
		return http.ProxyFromEnvironment(req)
	}, nil
}

// NewClient returns an HTTP client using the proxy settings that follows at
// most maxRedirects redirects
func NewClient(timeout time.Duration, httpProxy, httpsProxy string, maxRedirects int) (*http.Client, error) {
	proxy, err := NewProxyFunc(httpProxy, httpsProxy)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxy

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}, nil
}
