package main

import (
	"sync"
	"time"
)

// TickStats tracks per-stage timings of the tick loop
type TickStats struct {
	mu sync.Mutex

	tickCount      int64
	lastReportTime time.Time
	lastFPSUpdate  time.Time
	fpsCount       int64
	lastFPS        float64

	// Timing measurements
	readTimeTotal   time.Duration
	locateTimeTotal time.Duration
	renderTimeTotal time.Duration
	readCount       int64
	locateCount     int64
	renderCount     int64
}

// NewTickStats creates a new tick statistics tracker
func NewTickStats() *TickStats {
	now := time.Now()
	return &TickStats{
		lastReportTime: now,
		lastFPSUpdate:  now,
	}
}

// GetStats returns the averages since the previous call and resets counters
func (ts *TickStats) GetStats() (tickFPS float64, avgRead, avgLocate, avgRender time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	timeWindow := now.Sub(ts.lastReportTime).Seconds()
	if timeWindow <= 0 {
		timeWindow = 1.0
	}
	tickFPS = float64(ts.tickCount) / timeWindow

	if ts.readCount > 0 {
		avgRead = ts.readTimeTotal / time.Duration(ts.readCount)
	}
	if ts.locateCount > 0 {
		avgLocate = ts.locateTimeTotal / time.Duration(ts.locateCount)
	}
	if ts.renderCount > 0 {
		avgRender = ts.renderTimeTotal / time.Duration(ts.renderCount)
	}

	ts.tickCount = 0
	ts.readTimeTotal = 0
	ts.locateTimeTotal = 0
	ts.renderTimeTotal = 0
	ts.readCount = 0
	ts.locateCount = 0
	ts.renderCount = 0
	ts.lastReportTime = now
	return
}

// SinceReport returns the time since GetStats last ran
func (ts *TickStats) SinceReport() time.Duration {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return time.Since(ts.lastReportTime)
}

// UpdateRead records a camera read
func (ts *TickStats) UpdateRead(duration time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.readTimeTotal += duration
	ts.readCount++
}

// UpdateLocate records a pointer lookup
func (ts *TickStats) UpdateLocate(duration time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.locateTimeTotal += duration
	ts.locateCount++
}

// UpdateRender records history replay and overlays
func (ts *TickStats) UpdateRender(duration time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.renderTimeTotal += duration
	ts.renderCount++
}

// UpdateFPS counts a finished tick and returns the current rate
func (ts *TickStats) UpdateFPS() float64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	ts.tickCount++
	ts.fpsCount++

	// 1-second window
	if elapsed := now.Sub(ts.lastFPSUpdate); elapsed >= time.Second {
		ts.lastFPS = float64(ts.fpsCount) / elapsed.Seconds()
		ts.fpsCount = 0
		ts.lastFPSUpdate = now
	}
	return ts.lastFPS
}
