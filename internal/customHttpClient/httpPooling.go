package customHttpClient

import (
	"net/http"

	"github.com/akolanti/CyberRAG/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Pooled returns a client sharing one transport, so the embedding providers
// reuse connections across requests.
func Pooled() *http.Client {
	return &http.Client{Transport: customTransport}
}
