package models

import (
	"fmt"
	"time"
)

// AllTimeWindow is the zero-duration sentinel: statistics scoped by it
// cover the entire observed history instead of a trailing span.
const AllTimeWindow time.Duration = 0

type WindowSize string

const (
	Window1Day    WindowSize = "1d"
	Window7Days   WindowSize = "7d"
	Window30Days  WindowSize = "30d"
	WindowAllTime WindowSize = "all_time"
)

// ReportWindows lists the window set every computer report carries.
func ReportWindows() []WindowSize {
	return []WindowSize{Window1Day, Window7Days, Window30Days, WindowAllTime}
}

func (w WindowSize) Duration() time.Duration {
	switch w {
	case Window1Day:
		return 24 * time.Hour
	case Window7Days:
		return 7 * 24 * time.Hour
	case Window30Days:
		return 30 * 24 * time.Hour
	case WindowAllTime:
		return AllTimeWindow
	default:
		panic(fmt.Sprintf("invalid WindowSize: %q", w))
	}
}

// StatsKey is the JSON key the report uses for this window's statistics
// block, e.g. "7d_stats".
func (w WindowSize) StatsKey() string {
	return string(w) + "_stats"
}
