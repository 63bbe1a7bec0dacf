// Package poller drives the polling loop: a connectivity probe plus one
// patient/alert refresh per cycle, on a fixed interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/state"
)

// Scheduler runs sync cycles against the monitoring API. A cycle probes
// connectivity and then fetches the patient list and the alert feed
// concurrently; each branch commits (or records its failure) independently,
// so one failing endpoint never blocks the other's update.
//
// Cycles never overlap: a tick or trigger that lands while a cycle is running
// is dropped, not queued.
type Scheduler struct {
	client   *icu.Client
	state    *state.DashState
	interval time.Duration

	// TriggerFull requests a full cycle (probe + patients + alerts).
	// TriggerPatients requests a patient-list refresh only; the alert list is
	// left untouched. Both are capacity-1: a pending trigger absorbs repeats.
	TriggerFull     chan struct{}
	TriggerPatients chan struct{}

	syncing atomic.Bool
}

// New creates a scheduler polling at the given interval.
func New(client *icu.Client, st *state.DashState, interval time.Duration) *Scheduler {
	return &Scheduler{
		client:          client,
		state:           st,
		interval:        interval,
		TriggerFull:     make(chan struct{}, 1),
		TriggerPatients: make(chan struct{}, 1),
	}
}

// Run performs an immediate first cycle and then loops on the poll ticker and
// the manual triggers until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.RunCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunCycle(ctx)
		case <-s.TriggerFull:
			s.logInfo("Sync triggered", "trigger", "web UI")
			s.RunCycle(ctx)
		case <-s.TriggerPatients:
			s.logInfo("Patient refresh triggered", "trigger", "web UI")
			s.SyncPatients(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunCycle executes one sync cycle unless one is already running, in which
// case the trigger is dropped.
func (s *Scheduler) RunCycle(ctx context.Context) {
	if !s.syncing.CompareAndSwap(false, true) {
		s.logInfo("Sync already in progress, skipping trigger")
		return
	}
	defer s.syncing.Store(false)

	s.state.SetSyncStarted()
	s.logInfo("Sync cycle started")

	// The probe is independent of the data sync: a failed probe flips the
	// indicator offline but the data fetches still run.
	s.ProbeHealth(ctx)

	var wg sync.WaitGroup
	var patientsOK, alertsOK atomic.Bool

	wg.Add(2)
	go func() {
		defer wg.Done()
		patientsOK.Store(s.syncPatients(ctx))
	}()
	go func() {
		defer wg.Done()
		alertsOK.Store(s.syncAlerts(ctx))
	}()
	wg.Wait()

	switch {
	case patientsOK.Load() && alertsOK.Load():
		s.state.SetSyncFinished(state.StatusSuccess)
	case patientsOK.Load() || alertsOK.Load():
		s.state.SetSyncFinished(state.StatusPartial)
	default:
		s.state.SetSyncFinished(state.StatusFailed)
	}
	s.logInfo("Sync cycle finished", "status", string(s.state.TakeSnapshot().LastSync.Status))
}

// ProbeHealth checks server connectivity and overwrites the health flag.
func (s *Scheduler) ProbeHealth(ctx context.Context) {
	if err := s.client.CheckHealth(ctx); err != nil {
		s.logError("Connectivity probe failed", "error", err)
		s.state.SetServerHealth(false, err.Error())
		return
	}
	s.state.SetServerHealth(true, "")
}

// SyncPatients refreshes only the patient list. Used for the partial re-sync
// after a patient is added.
func (s *Scheduler) SyncPatients(ctx context.Context) {
	s.syncPatients(ctx)
}

func (s *Scheduler) syncPatients(ctx context.Context) bool {
	patients, err := s.client.ListPatients(ctx)
	if err != nil {
		s.logError("Patient fetch failed", "error", err)
		s.state.SetPatientsError(err.Error())
		return false
	}
	s.state.SetPatients(patients)
	s.logInfo("Patients loaded", "count", len(patients))
	return true
}

func (s *Scheduler) syncAlerts(ctx context.Context) bool {
	alerts, err := s.client.ListAlerts(ctx)
	if err != nil {
		s.logError("Alert fetch failed", "error", err)
		s.state.SetAlertsError(err.Error())
		return false
	}
	s.state.SetAlerts(alerts)
	s.logInfo("Alerts loaded", "count", len(alerts))
	return true
}

func (s *Scheduler) logInfo(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Sync"}, attrs...)
	slog.Info(msg, allAttrs...)
	s.state.AddLog("INFO", "Sync", msg)
}

func (s *Scheduler) logError(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Sync"}, attrs...)
	slog.Error(msg, allAttrs...)
	s.state.AddLog("ERROR", "Sync", msg)
}
