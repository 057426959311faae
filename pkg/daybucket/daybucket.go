package daybucket

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NoLimit disables truncation in Select.
const NoLimit = 0

// Sample is a timestamped point of a sub-daily series. Label holds the
// provider's textual date-time when one is available.
type Sample[P any] struct {
	At      time.Time
	Label   string
	Payload P
}

// Policy picks the samples that represent a day.
type Policy interface {
	matches(index int, at time.Time, label string) bool
	String() string
}

// NearestToTimeOfDay keeps samples whose time of day is exactly Hour:Minute:00.
// The match is exact; a series that drifts off the target clock yields fewer days.
type NearestToTimeOfDay struct {
	Hour   int
	Minute int
}

// FixedStride keeps every Stride-th sample starting at index 0.
type FixedStride struct {
	Stride int
}

var (
	// Noon matches the 12:00:00 forecast slot.
	Noon Policy = NearestToTimeOfDay{Hour: 12}
	// OnePerDay3h assumes eight 3-hour samples per day.
	OnePerDay3h Policy = FixedStride{Stride: 8}
)

func (p NearestToTimeOfDay) clock() string {
	return fmt.Sprintf("%02d:%02d:00", p.Hour, p.Minute)
}

func (p NearestToTimeOfDay) matches(_ int, at time.Time, label string) bool {
	if label != "" {
		return strings.Contains(label, p.clock())
	}
	h, m, s := at.UTC().Clock()
	return h == p.Hour && m == p.Minute && s == 0
}

func (p NearestToTimeOfDay) String() string {
	return fmt.Sprintf("time:%02d:%02d", p.Hour, p.Minute)
}

func (p FixedStride) matches(index int, _ time.Time, _ string) bool {
	stride := p.Stride
	if stride < 1 {
		stride = 1
	}
	return index%stride == 0
}

func (p FixedStride) String() string {
	return "stride:" + strconv.Itoa(p.Stride)
}

// Select returns the samples chosen by policy in their original order,
// truncated to maxCount entries unless maxCount is NoLimit or negative.
func Select[P any](series []Sample[P], policy Policy, maxCount int) []Sample[P] {
	out := make([]Sample[P], 0, len(series))
	for i, s := range series {
		if maxCount > 0 && len(out) == maxCount {
			break
		}
		if policy.matches(i, s.At, s.Label) {
			out = append(out, s)
		}
	}
	return out
}

// ParsePolicy reads "noon", "time:HH:MM" or "stride:N".
func ParsePolicy(raw string) (Policy, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "noon":
		return Noon, nil
	case strings.HasPrefix(value, "time:"):
		ts, err := time.Parse("15:04", strings.TrimPrefix(value, "time:"))
		if err != nil {
			return nil, fmt.Errorf("parse time policy %q: %w", raw, err)
		}
		return NearestToTimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}, nil
	case strings.HasPrefix(value, "stride:"):
		n, err := strconv.Atoi(strings.TrimPrefix(value, "stride:"))
		if err != nil {
			return nil, fmt.Errorf("parse stride policy %q: %w", raw, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("stride must be positive, got %d", n)
		}
		return FixedStride{Stride: n}, nil
	default:
		return nil, fmt.Errorf("unknown day selection policy %q", raw)
	}
}
