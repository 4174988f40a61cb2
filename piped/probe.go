package piped

import (
	"context"
	"fmt"
	"time"

	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/shibi-dl/shibi/util"
	"github.com/spf13/viper"
)

const (
	probeMetadataTimeout = 3 * time.Second
	probeStreamTimeout   = 2 * time.Second
)

// Probe establishes the instance's health state: a bounded metadata
// request for the reference video, then a timed header-only request
// against one of its stream URLs to measure latency and detect direct
// CDN serving. It never fails to the caller; every failure mode folds
// into online=false. Initialized is set unconditionally on completion.
func (i *Instance) Probe(ctx context.Context) {
	defer i.setInitialized()

	if reason := i.probe(ctx); reason != "" {
		// The public contract is just the online flag; the reason is
		// kept for diagnostics only.
		log.Debugf("mirror %s marked offline: %s", i.domain, reason)
		i.markOffline()
	}
}

func (i *Instance) probe(ctx context.Context) (reason string) {
	defer func() {
		if r := recover(); r != nil {
			reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	metaCtx, cancel := context.WithTimeout(ctx, probeMetadataTimeout)
	defer cancel()

	reference, err := fetchStreams(metaCtx, i.host, viper.GetString(key.MirrorsProbeVideo))
	if err != nil {
		return fmt.Sprintf("reference metadata: %v", err)
	}

	if len(reference.VideoStreams) == 0 {
		return "reference video has no video streams"
	}

	// The probe targets a fixed position in the stream list, clamped to
	// the last entry when the mirror returns fewer streams.
	idx := util.Min(viper.GetInt(key.MirrorsProbeIndex), len(reference.VideoStreams)-1)
	if idx < 0 {
		idx = 0
	}

	headCtx, cancel := context.WithTimeout(ctx, probeStreamTimeout)
	defer cancel()

	start := time.Now()
	_, hasLength, err := headContentLength(headCtx, reference.VideoStreams[idx].URL)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Sprintf("stream head: %v", err)
	}

	// A zero measurement means the response never left the process; a
	// mirror that ranks first on that number would poison selection.
	if elapsed.Milliseconds() == 0 {
		return "zero latency measurement"
	}

	i.mu.Lock()
	i.cdn = hasLength
	i.ping = elapsed
	i.mu.Unlock()

	return ""
}
