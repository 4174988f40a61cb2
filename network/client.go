// Package network provides the pre-configured HTTP clients used for mirror communication.
package network

import (
	"net/http"
	"time"

	"github.com/shibi-dl/shibi/key"
	"github.com/spf13/viper"
)

// Client is the singleton HTTP client shared across the application for efficient resource utilization.
// It is configured with increased concurrency limits and reasonable timeouts tailored for talking to
// many mirror instances at once.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Do executes the request with the shared client, or with the TLS-spoofed client
// when network.tls_spoof is enabled. Mirror-facing code should go through here.
func Do(req *http.Request) (*http.Response, error) {
	if viper.GetBool(key.NetworkTLSSpoof) {
		return DoSpoofed(req)
	}
	return Client.Do(req)
}
