package piped

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// fakeMirror is an in-process mirror serving a canned metadata document
// and header-only byte endpoints keyed by format tag.
type fakeMirror struct {
	server   *httptest.Server
	response streamsResponse
	sizes    map[string]int64

	// headDelay keeps loopback latency measurable.
	headDelay time.Duration
	bareHead  bool

	requests atomic.Int64
	lastHead atomic.Value
}

func newFakeMirror() *fakeMirror {
	m := &fakeMirror{
		sizes:     map[string]int64{},
		headDelay: 2 * time.Millisecond,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/streams/", func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		_ = json.NewEncoder(w).Encode(m.response)
	})
	mux.HandleFunc("/bytes/", func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		m.lastHead.Store(r.URL.Path)
		time.Sleep(m.headDelay)

		if m.bareHead {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				return
			}
			_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nConnection: close\r\n\r\n"))
			_ = conn.Close()
			return
		}

		tag := strings.TrimPrefix(r.URL.Path, "/bytes/")
		size, ok := m.sizes[tag]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	})

	m.server = httptest.NewServer(mux)
	return m
}

func (m *fakeMirror) url() string { return m.server.URL }

func (m *fakeMirror) close() { m.server.Close() }

func (m *fakeMirror) stream(itag int, codec, quality, mime string, size int64) streamJSON {
	tag := strconv.Itoa(itag)
	m.sizes[tag] = size
	return streamJSON{
		URL:      m.server.URL + "/bytes/" + tag,
		Codec:    codec,
		Quality:  quality,
		MimeType: mime,
		Itag:     &itag,
	}
}

func brokenMirror() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
}
