package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date (store field type "time").
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts HH:MM, HH:MM:SS and HH:MM:SS.fff.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: want HH:MM[:SS]", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: bad minute", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return TimeOfDay{}, fmt.Errorf("time of day %q: bad second", s)
		}
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Format renders the time with a Go reference layout such as "3:04 PM".
func (t TimeOfDay) Format(layout string) string {
	return time.Date(2000, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(layout)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// DefaultMediaBase is where store-hosted images are served from.
const DefaultMediaBase = "https://static.wixstatic.com/media/"

const wixImagePrefix = "wix:image://v1/"

// ImageRef is an image reference as stored: either a plain URL or a
// store media reference (wix:image://v1/<file>/<name>#<meta>).
type ImageRef string

// URL resolves the reference against mediaBase. Plain URLs pass through.
func (r ImageRef) URL(mediaBase string) string {
	s := string(r)
	if !strings.HasPrefix(s, wixImagePrefix) {
		return s
	}
	file := strings.TrimPrefix(s, wixImagePrefix)
	if i := strings.IndexAny(file, "/#"); i >= 0 {
		file = file[:i]
	}
	if mediaBase == "" {
		mediaBase = DefaultMediaBase
	}
	return strings.TrimRight(mediaBase, "/") + "/" + file
}
