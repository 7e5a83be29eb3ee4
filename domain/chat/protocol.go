package chat

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	protocolLayout = "020106150405" // ddMMyyHHmmss
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"
	protocolLength = len(protocolLayout)
)

// LoadLocation resolves the zone used for protocols and rendered dates.
// The embedded tz database keeps it working on images without zoneinfo.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Protocol formats at as ddMMyyHHmmss in loc.
// It has seconds resolution: two chats opened in the same second collide.
func Protocol(at time.Time, loc *time.Location) string {
	return at.In(loc).Format(protocolLayout)
}

// IsProtocol reports whether s has the shape of a generated protocol.
func IsProtocol(s string) bool {
	if len(s) != protocolLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateTimeLayout)
}

func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timeLayout)
}
