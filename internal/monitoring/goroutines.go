package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor samples the goroutine count and warns when it looks like
// the server is leaking stream handlers.
type GoroutineMonitor struct {
	mu              sync.RWMutex
	logger          zerolog.Logger
	baseline        int
	current         int
	peak            int
	checkInterval   time.Duration
	alertThreshold  int
	lastAlert       time.Time
	alertCooldown   time.Duration
	stopOnce        sync.Once
	stopChan        chan struct{}
	componentCounts map[string]int
}

// NewGoroutineMonitor creates a monitor. A zero interval or threshold falls
// back to 30s and 1000 goroutines.
func NewGoroutineMonitor(logger zerolog.Logger, interval time.Duration, threshold int) *GoroutineMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if threshold <= 0 {
		threshold = 1000
	}
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		logger:          logger.With().Str("component", "goroutine_monitor").Logger(),
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   interval,
		alertThreshold:  threshold,
		alertCooldown:   5 * time.Minute,
		stopChan:        make(chan struct{}),
		componentCounts: make(map[string]int),
	}
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop ends the monitoring loop. It is safe to call more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() { close(gm.stopChan) })
}

func (gm *GoroutineMonitor) monitor() {
	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-gm.stopChan:
			return
		}
	}
}

// Check samples the goroutine count now and reports whether it alerted.
func (gm *GoroutineMonitor) Check() bool {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	growth := current - gm.baseline
	growthRate := float64(growth) / float64(max(gm.baseline, 1)) * 100

	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	peak := gm.peak
	components := copyMap(gm.componentCounts)
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Float64("growth_rate", growthRate).
		Interface("components", components).
		Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Float64("growth_rate", growthRate).
			Msg("High goroutine count detected - possible leak")
	}
	return shouldAlert
}

// RegisterComponent records a component's goroutine count
func (gm *GoroutineMonitor) RegisterComponent(name string, count int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] = count
}

// AdjustComponent adds delta to a component's count, for components whose
// goroutines come and go such as event streams.
func (gm *GoroutineMonitor) AdjustComponent(name string, delta int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] += delta
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: copyMap(gm.componentCounts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
