package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Timestamp is a point in time as supplied by a caller. It remembers whether the caller gave a
// UTC offset, so that ISOFormat reproduces a naive or an offset-qualified ISO-8601 string.
type Timestamp struct {
	time.Time
	zoned bool
}

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// epochMillisThreshold separates Unix epochs given in seconds from those given in milliseconds
const epochMillisThreshold = 2e10

// NewTimestamp wraps t. The offset of t is kept in the serialized form.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, zoned: true}
}

// TimestampFromUnix converts a Unix epoch to a UTC timestamp. Values beyond 2e10 in magnitude
// are taken as milliseconds.
func TimestampFromUnix(epoch float64) (Timestamp, error) {
	if math.IsNaN(epoch) || math.IsInf(epoch, 0) {
		return Timestamp{}, goerr.New("invalid datetime format", goerr.V("value", epoch))
	}
	if math.Abs(epoch) > epochMillisThreshold {
		epoch /= 1000
	}

	sec, frac := math.Modf(epoch)
	usec := math.Round(frac * 1e6)
	return NewTimestamp(time.Unix(int64(sec), int64(usec)*int64(time.Microsecond)).UTC()), nil
}

// ParseTimestamp accepts RFC 3339 (with either case of the UTC designator), naive ISO-8601
// date-times, bare dates and numeric Unix epochs.
func ParseTimestamp(s string) (Timestamp, error) {
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, zoned: true}, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	if epoch, err := strconv.ParseFloat(s, 64); err == nil {
		return TimestampFromUnix(epoch)
	}

	return Timestamp{}, goerr.New("invalid datetime format", goerr.V("value", s))
}

// Zoned reports whether the timestamp carries an explicit UTC offset.
func (x Timestamp) Zoned() bool {
	return x.zoned
}

// ISOFormat renders YYYY-MM-DDTHH:MM:SS, then .ffffff if microseconds are non-zero, then
// +HH:MM if the timestamp is zoned.
func (x Timestamp) ISOFormat() string {
	s := x.Time.Format("2006-01-02T15:04:05")
	if us := x.Time.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	if x.zoned {
		s += x.Time.Format("-07:00")
	}
	return s
}

func (x Timestamp) String() string {
	return x.ISOFormat()
}

func (x Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ISOFormat())
}

// UnmarshalJSON accepts a string in any form ParseTimestamp does, or a number as a Unix epoch.
func (x *Timestamp) UnmarshalJSON(data []byte) error {
	var ts Timestamp
	var err error

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return goerr.New("datetime must not be null")
	}

	if len(trimmed) > 0 && trimmed[0] != '"' {
		var epoch float64
		if err := json.Unmarshal(trimmed, &epoch); err != nil {
			return goerr.Wrap(err, "datetime must be a string or a number")
		}
		ts, err = TimestampFromUnix(epoch)
	} else {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(err, "datetime must be a string or a number")
		}
		ts, err = ParseTimestamp(s)
	}
	if err != nil {
		return err
	}
	*x = ts
	return nil
}

// UnmarshalText allows timestamps in CLI flags and config files.
func (x *Timestamp) UnmarshalText(text []byte) error {
	ts, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*x = ts
	return nil
}
