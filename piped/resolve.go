package piped

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/log"
)

var (
	// ErrOffline reports that the metadata mirror failed and has been
	// marked offline. Retry against the next ranked instance.
	ErrOffline = errors.New("mirror is offline")

	// ErrCDNOffline reports that the byte-serving mirror failed and has
	// been marked offline. Retry once a different CDN mirror ranks first.
	ErrCDNOffline = errors.New("cdn mirror is offline")
)

// Streams resolves the full stream listing of a video against this
// instance, with authoritative byte sizes taken from the fastest
// CDN-capable mirror in the registry.
//
// Metadata comes from the receiver; byte sizes come from header-only
// probes against the CDN mirror's records, correlated per stream via
// Matches. Any failure marks the responsible instance offline and
// aborts the whole call, so partially sized listings never escape.
func (i *Instance) Streams(ctx context.Context, videoID string, registry *Registry) (*Details, error) {
	if !i.Online() {
		return nil, fmt.Errorf("%s: %w", i.domain, ErrOffline)
	}

	cdn, ok := FastestCDN(registry.Instances()).Get()
	if !ok {
		return nil, ErrCDNOffline
	}

	var (
		wg sync.WaitGroup

		primary    *streamsResponse
		primaryErr error

		remote    *streamsResponse
		remoteErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		primary, primaryErr = fetchStreams(ctx, i.host, videoID)
	}()

	// The CDN mirror may be the receiver itself; fetching twice keeps
	// the two roles independent and costs one cached request.
	wg.Add(1)
	go func() {
		defer wg.Done()
		remote, remoteErr = fetchStreams(ctx, cdn.host, videoID)
	}()

	wg.Wait()

	if primaryErr != nil {
		log.Warnf("metadata mirror %s failed: %v", i.domain, primaryErr)
		i.markOffline()
		return nil, fmt.Errorf("%s: %w", i.domain, ErrOffline)
	}
	if remoteErr != nil {
		log.Warnf("cdn mirror %s failed: %v", cdn.domain, remoteErr)
		cdn.markOffline()
		return nil, fmt.Errorf("%s: %w", cdn.domain, ErrCDNOffline)
	}

	audio := FilterAudio(lo.Map(primary.AudioStreams, func(s streamJSON, _ int) *Stream {
		return s.toStream()
	}))
	video := FilterVideo(lo.Map(primary.VideoStreams, func(s streamJSON, _ int) *Stream {
		return s.toStream()
	}))

	records := make([]*Stream, 0, len(remote.AudioStreams)+len(remote.VideoStreams))
	for _, s := range append(remote.AudioStreams, remote.VideoStreams...) {
		records = append(records, s.toStream())
	}

	if err := annotateSizes(ctx, append(append([]*Stream{}, audio...), video...), records); err != nil {
		log.Warnf("cdn mirror %s failed during size probes: %v", cdn.domain, err)
		cdn.markOffline()
		return nil, fmt.Errorf("%s: %w", cdn.domain, ErrCDNOffline)
	}

	return &Details{
		VideoID:      videoID,
		Title:        primary.Title,
		Category:     primary.Category,
		Description:  primary.Description,
		ThumbnailURL: primary.ThumbnailURL,
		UploadDate:   primary.UploadDate,
		Uploader:     primary.Uploader,
		VideoStreams: video,
		AudioStreams: audio,
	}, nil
}

// annotateSizes rewrites every stream in place with the CDN record's URL
// and measured byte size. Probes run concurrently; the first failure
// wins and poisons the whole batch.
func annotateSizes(ctx context.Context, streams []*Stream, records []*Stream) error {
	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg sync.WaitGroup

		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for _, stream := range streams {
		match, ok := lo.Find(records, func(r *Stream) bool {
			return stream.Matches(r)
		})
		if !ok {
			return fmt.Errorf("no cdn record for stream %q (%s)", stream.Quality, stream.MimeType)
		}

		wg.Add(1)
		go func(s *Stream, record *Stream) {
			defer wg.Done()

			size, present, err := headContentLength(probeCtx, record.URL)
			if err != nil {
				fail(fmt.Errorf("size probe for %q: %w", s.Quality, err))
				return
			}
			if !present {
				fail(fmt.Errorf("no content-length for %q", s.Quality))
				return
			}

			// Bytes are downloaded from the record that reported the
			// size, so the URL follows the measurement.
			s.URL = record.URL
			s.Size = size
		}(stream, match)
	}

	wg.Wait()

	return firstErr
}
