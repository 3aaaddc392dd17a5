package log

import (
	"fmt"
	stdlog "log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug mode is enabled with TGSHEET_DEBUG=1.
var (
	DebugEnabled bool
	DebugLog     *stdlog.Logger
)

// InitDebug enables debug traces when TGSHEET_DEBUG=1 is set. Initialize
// calls it; tests may call it directly.
func InitDebug() {
	if os.Getenv("TGSHEET_DEBUG") != "1" {
		DebugEnabled = false
		DebugLog = zap.NewStdLog(zap.NewNop())
		return
	}

	DebugEnabled = true
	DebugLog = stdLogger(base.Named("debug"), zapcore.DebugLevel)
	DebugLog.Println("debug mode enabled")
}

// CloseDebug writes the frame profile, if any, before shutdown.
func CloseDebug() {
	if DebugEnabled {
		profiler.LogStats()
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// SheetTrace logs bottom sheet state transitions.
func SheetTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[SHEET] "+format, v...)
	}
}

// ScrollTrace logs list scroll events.
func ScrollTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[SCROLL] "+format, v...)
	}
}

// LayoutTrace logs layout computation events.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

// FrameProfiler counts animation frames and view renders per component.
type FrameProfiler struct {
	mu         sync.Mutex
	components map[string]*FrameStats
	frames     int64
	slowFrames int64
}

// FrameStats is the per-component tally.
type FrameStats struct {
	Name    string
	Count   int64
	Total   time.Duration
	Slowest time.Duration
}

// slowFrame is one frame at 60fps.
const slowFrame = 16 * time.Millisecond

var profiler = &FrameProfiler{components: make(map[string]*FrameStats)}

// GetProfiler returns the global frame profiler.
func GetProfiler() *FrameProfiler {
	return profiler
}

// Start begins timing a component. Call the returned func when done.
func (p *FrameProfiler) Start(component string) func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.record(component, time.Since(start))
	}
}

func (p *FrameProfiler) record(component string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats, ok := p.components[component]
	if !ok {
		stats = &FrameStats{Name: component}
		p.components[component] = stats
	}
	stats.Count++
	stats.Total += elapsed
	if elapsed > stats.Slowest {
		stats.Slowest = elapsed
	}
	p.frames++
	if elapsed > slowFrame {
		p.slowFrames++
		if DebugLog != nil {
			DebugLog.Printf("[PERF] slow %s: %v", component, elapsed)
		}
	}
}

// Stats returns a summary of the recorded frames.
func (p *FrameProfiler) Stats() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("frames=%d slow=%d\n", p.frames, p.slowFrames))

	sorted := make([]*FrameStats, 0, len(p.components))
	for _, s := range p.components {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})
	for _, s := range sorted {
		avg := time.Duration(0)
		if s.Count > 0 {
			avg = s.Total / time.Duration(s.Count)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d avg=%v slowest=%v\n", s.Name, s.Count, avg, s.Slowest))
	}
	return sb.String()
}

// LogStats writes the summary to the debug log.
func (p *FrameProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.Stats())
	}
}

// Reset clears all recorded frames.
func (p *FrameProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.components = make(map[string]*FrameStats)
	p.frames = 0
	p.slowFrames = 0
}
