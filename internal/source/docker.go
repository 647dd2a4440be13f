package source

import (
	"strings"
	"time"
)

// parseDockerTimestamp splits the RFC3339Nano prefix that `docker logs
// --timestamps` puts in front of every line.
func parseDockerTimestamp(line string) (time.Time, string, bool) {
	prefix, msg, found := strings.Cut(line, " ")
	if !found {
		return time.Time{}, line, false
	}
	ts, err := time.Parse(time.RFC3339Nano, prefix)
	if err != nil {
		return time.Time{}, line, false
	}
	return ts, msg, true
}
