package providers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger is implemented by every adapter that can probe its upstream.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the last observed state of one provider upstream.
type HealthStatus struct {
	Provider     string        `json:"provider"`
	Healthy      bool          `json:"healthy"`
	LastCheck    time.Time     `json:"last_check"`
	FailureCount int           `json:"failure_count"`
	ResponseTime time.Duration `json:"response_time"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Registry tracks all provider adapters and probes their health on an
// interval. Probe failures never affect in-flight recommendation traffic;
// they only surface on the health endpoint.
type Registry struct {
	pingers       map[string]Pinger
	status        map[string]*HealthStatus
	checkInterval time.Duration
	logger        *logrus.Logger
	mu            sync.RWMutex
	stopChan      chan struct{}
	running       bool
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		pingers:       make(map[string]Pinger),
		status:        make(map[string]*HealthStatus),
		checkInterval: 30 * time.Second,
		logger:        logger,
	}
}

// Register adds a named adapter to health monitoring.
func (r *Registry) Register(name string, p Pinger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pingers[name] = p
	r.status[name] = &HealthStatus{Provider: name, Healthy: true}
}

// Start launches the periodic probe loop. A registry can be restarted after
// Stop; each run gets its own stop channel.
func (r *Registry) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopChan = make(chan struct{})
	stop := r.stopChan
	r.mu.Unlock()

	go r.loop(stop)
}

// Stop halts the probe loop.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	close(r.stopChan)
}

// Snapshot returns the current status of every registered provider, ordered
// by name.
func (r *Registry) Snapshot() []HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]HealthStatus, 0, len(r.status))
	for _, s := range r.status {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

func (r *Registry) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	r.probeAll()
	for {
		select {
		case <-ticker.C:
			r.probeAll()
		case <-stop:
			return
		}
	}
}

func (r *Registry) probeAll() {
	r.mu.RLock()
	names := make([]string, 0, len(r.pingers))
	for name := range r.pingers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	for _, name := range names {
		r.probe(name)
	}
}

func (r *Registry) probe(name string) {
	r.mu.RLock()
	p := r.pingers[name]
	r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	elapsed := time.Since(start)

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.status[name]
	s.LastCheck = time.Now()
	s.ResponseTime = elapsed
	if err != nil {
		s.Healthy = false
		s.FailureCount++
		s.ErrorMessage = err.Error()
		r.logger.WithFields(logrus.Fields{
			"provider": name,
			"error":    err,
		}).Warn("Provider health probe failed")
		return
	}
	s.Healthy = true
	s.FailureCount = 0
	s.ErrorMessage = ""
}
