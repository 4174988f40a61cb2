package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// watchProgress consumes the key=value blocks ffmpeg writes to the
// progress pipe and reports one snapshot per completed block. It returns
// when the pipe closes.
func watchProgress(r io.Reader, report func(Progress)) {
	scanner := bufio.NewScanner(r)

	var current Progress
	for scanner.Scan() {
		field, value, found := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !found {
			continue
		}

		switch field {
		case "out_time_us":
			if us, err := strconv.ParseInt(value, 10, 64); err == nil {
				current.OutTime = time.Duration(us) * time.Microsecond
			}
		case "speed":
			current.Speed = value
		case "progress":
			// "progress" terminates a block.
			current.Done = value == "end"
			if report != nil {
				report(current)
			}
		}
	}
}
