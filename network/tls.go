// Package network provides the pre-configured HTTP clients used for mirror communication.
//
// The spoofed client leverages refraction-networking/utls to emulate Chrome's
// Client Hello signature. Some mirror operators sit behind anti-bot layers
// (Cloudflare, DDoS-Guard) that reject standard Go TLS handshakes; presenting
// a browser fingerprint keeps those instances usable.
//
// Protocol negotiation: an HTTP/2 connection is attempted first (preferred by
// modern CDNs); on failure the request transparently falls back to a forced
// HTTP/1.1 transport.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/shibi-dl/shibi/constant"
	"golang.org/x/net/http2"
)

const spoofTimeout = 30 * time.Second

// h2Transport is a shared HTTP/2 transport for servers that negotiate h2.
var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			// Use custom DialTLSContext to provide utls connections
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr)
			},
		}
	})
	return h2Transport
}

// h1Transport is a shared HTTP/1.1 transport for servers that only speak http/1.1.
var h1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLSH1(ctx, network, addr)
	},
}

// DoSpoofed performs the request with Chrome TLS fingerprint spoofing.
// It tries the H2 transport first and falls back to HTTP/1.1 when the
// handshake or request fails.
func DoSpoofed(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", constant.UserAgent)
	}

	client := &http.Client{
		Timeout:   spoofTimeout,
		Transport: getH2Transport(),
	}

	resp, err := client.Do(req)
	if err == nil {
		return resp, nil
	}

	fallback, cloneErr := cloneRequest(req)
	if cloneErr != nil {
		return nil, fmt.Errorf("spoofed request failed: %w", err)
	}

	h1Client := &http.Client{
		Timeout:   spoofTimeout,
		Transport: h1Transport,
	}
	resp, err = h1Client.Do(fallback)
	if err != nil {
		return nil, fmt.Errorf("spoofed request failed: %w", err)
	}
	return resp, nil
}

// cloneRequest rebuilds a request for the H1 fallback attempt.
// Bodies are restored from GetBody; requests without one must be bodiless.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint.
// Advertises both h2 and http/1.1 (natural Chrome behavior).
func dialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: spoofTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// dialTLSH1 creates a TLS connection forcing HTTP/1.1 only (for fallback).
func dialTLSH1(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: spoofTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
