package sport

import (
	"fmt"
	"strings"
)

type Sport string

const (
	Football    Sport = "FOOTBALL"
	Basketball  Sport = "BASKETBALL"
	Running     Sport = "RUNNING"
	Volleyball  Sport = "VOLLEYBALL"
	Swimming    Sport = "SWIMMING"
	Athletics   Sport = "ATHLETICS"
	Tennis      Sport = "TENNIS"
	Unspecified Sport = "UNSPECIFIED"
)

var all = []Sport{
	Football,
	Basketball,
	Running,
	Volleyball,
	Swimming,
	Athletics,
	Tennis,
	Unspecified,
}

func All() []Sport {
	out := make([]Sport, len(all))
	copy(out, all)
	return out
}

func (s Sport) Valid() bool {
	for _, known := range all {
		if s == known {
			return true
		}
	}
	return false
}

// LowerIsBetter reports whether a smaller score ranks higher. Running scores
// are placements, so first place is 1.
func (s Sport) LowerIsBetter() bool {
	return s == Running
}

func (s Sport) String() string {
	return string(s)
}

func Parse(value string) (Sport, error) {
	s := Sport(strings.ToUpper(strings.TrimSpace(value)))
	if s == "" {
		return Unspecified, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("unknown sport %q", value)
	}
	return s, nil
}
