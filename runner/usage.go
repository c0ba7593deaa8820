package runner

import (
	"fmt"
	"time"
)

// Usage is the resource usage reported by the kernel at reap time
type Usage struct {
	UserTime   time.Duration // CPU time spent in user mode
	SystemTime time.Duration // CPU time spent in kernel mode
	MaxRSS     Size          // peak resident set size
}

func (u Usage) String() string {
	return fmt.Sprintf("Usage[user=%v sys=%v rss=%v]", u.UserTime, u.SystemTime, u.MaxRSS)
}
