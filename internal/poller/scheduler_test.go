package poller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/state"
)

// fakeAPI is a stub monitoring API whose branches can be failed independently.
type fakeAPI struct {
	patients     []icu.Patient
	alerts       []icu.Alert
	failHealth   atomic.Bool
	failPatients atomic.Bool
	failAlerts   atomic.Bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if f.failHealth.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "online"})
	})
	mux.HandleFunc("/api/patients", func(w http.ResponseWriter, r *http.Request) {
		if f.failPatients.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "patients": f.patients})
	})
	mux.HandleFunc("/api/alerts", func(w http.ResponseWriter, r *http.Request) {
		if f.failAlerts.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "alerts": f.alerts})
	})
	return mux
}

func newTestScheduler(t *testing.T, api *fakeAPI) (*Scheduler, *state.DashState) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	st := state.New(100, srv.URL)
	return New(icu.New(srv.URL), st, time.Minute), st
}

func TestCycleCommitsBothBranches(t *testing.T) {
	api := &fakeAPI{
		patients: []icu.Patient{{PatientID: 1, Name: "A"}, {PatientID: 2, Name: "B"}},
		alerts:   []icu.Alert{{PatientID: 1, Priority: 1, Message: "HR critical"}},
	}
	sched, st := newTestScheduler(t, api)

	sched.RunCycle(context.Background())

	snap := st.TakeSnapshot()
	if !snap.Health.Online {
		t.Error("expected online after healthy probe")
	}
	if len(snap.Patients) != 2 || len(snap.Alerts) != 1 {
		t.Errorf("expected 2 patients / 1 alert, got %d / %d", len(snap.Patients), len(snap.Alerts))
	}
	if snap.LastSync.Status != state.StatusSuccess {
		t.Errorf("expected success cycle, got %s", snap.LastSync.Status)
	}
	if snap.PatientsError != "" || snap.AlertsError != "" {
		t.Errorf("expected clean branch errors, got %q / %q", snap.PatientsError, snap.AlertsError)
	}
}

func TestPartialCommitOnAlertFailure(t *testing.T) {
	api := &fakeAPI{
		patients: []icu.Patient{{PatientID: 1}},
		alerts:   []icu.Alert{{PatientID: 1, Priority: 2, Message: "old alert"}},
	}
	sched, st := newTestScheduler(t, api)

	// Cycle 1: both branches commit.
	sched.RunCycle(context.Background())

	// Cycle 2: alerts fail, patients change.
	api.patients = []icu.Patient{{PatientID: 1}, {PatientID: 9}}
	api.failAlerts.Store(true)
	sched.RunCycle(context.Background())

	snap := st.TakeSnapshot()
	if len(snap.Patients) != 2 {
		t.Errorf("patient branch must still commit, got %d patients", len(snap.Patients))
	}
	if len(snap.Alerts) != 1 || snap.Alerts[0].Message != "old alert" {
		t.Errorf("alert list must keep its pre-cycle value, got %+v", snap.Alerts)
	}
	if snap.AlertsError == "" {
		t.Error("expected alert branch error recorded")
	}
	if snap.LastSync.Status != state.StatusPartial {
		t.Errorf("expected partial cycle, got %s", snap.LastSync.Status)
	}
}

func TestBothBranchesFail(t *testing.T) {
	api := &fakeAPI{}
	api.failPatients.Store(true)
	api.failAlerts.Store(true)
	sched, st := newTestScheduler(t, api)

	sched.RunCycle(context.Background())

	if st.TakeSnapshot().LastSync.Status != state.StatusFailed {
		t.Errorf("expected failed cycle, got %s", st.TakeSnapshot().LastSync.Status)
	}
}

func TestProbeIdempotence(t *testing.T) {
	api := &fakeAPI{}
	sched, st := newTestScheduler(t, api)

	for i := 0; i < 3; i++ {
		sched.ProbeHealth(context.Background())
		if !st.TakeSnapshot().Health.Online {
			t.Fatal("healthy endpoint must keep the flag online")
		}
	}

	api.failHealth.Store(true)
	sched.ProbeHealth(context.Background())
	if st.TakeSnapshot().Health.Online {
		t.Error("a single failed probe must flip the flag offline")
	}
}

func TestProbeIndependentOfDataSync(t *testing.T) {
	api := &fakeAPI{patients: []icu.Patient{{PatientID: 1}}}
	api.failHealth.Store(true)
	sched, st := newTestScheduler(t, api)

	sched.RunCycle(context.Background())

	snap := st.TakeSnapshot()
	if snap.Health.Online {
		t.Error("expected offline")
	}
	if len(snap.Patients) != 1 {
		t.Error("data sync must still run when the probe fails")
	}
}

func TestCycleSkippedWhileSyncing(t *testing.T) {
	api := &fakeAPI{patients: []icu.Patient{{PatientID: 1}}}
	sched, st := newTestScheduler(t, api)

	// Simulate a cycle in flight.
	sched.syncing.Store(true)
	sched.RunCycle(context.Background())

	snap := st.TakeSnapshot()
	if snap.LastSync.Status != state.StatusIdle {
		t.Errorf("skipped trigger must not start a cycle, got %s", snap.LastSync.Status)
	}
	if len(snap.Patients) != 0 {
		t.Error("skipped trigger must not touch state")
	}

	// Released guard: the next trigger runs normally.
	sched.syncing.Store(false)
	sched.RunCycle(context.Background())
	if st.TakeSnapshot().LastSync.Status != state.StatusSuccess {
		t.Error("expected a normal cycle after the guard is released")
	}
}

func TestSyncPatientsLeavesAlertsAlone(t *testing.T) {
	api := &fakeAPI{
		patients: []icu.Patient{{PatientID: 1}},
		alerts:   []icu.Alert{{PatientID: 1, Priority: 3, Message: "stale"}},
	}
	sched, st := newTestScheduler(t, api)
	sched.RunCycle(context.Background())

	api.patients = []icu.Patient{{PatientID: 1}, {PatientID: 2}}
	api.alerts = nil // a full cycle would wipe the alert list
	sched.SyncPatients(context.Background())

	snap := st.TakeSnapshot()
	if len(snap.Patients) != 2 {
		t.Errorf("expected refreshed patients, got %d", len(snap.Patients))
	}
	if len(snap.Alerts) != 1 {
		t.Errorf("partial re-sync must not touch alerts, got %+v", snap.Alerts)
	}
}
