package state

import (
	"testing"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
)

func TestNewStartsEmpty(t *testing.T) {
	s := New(100, "http://icu.example")
	snap := s.TakeSnapshot()

	if len(snap.Patients) != 0 || len(snap.Alerts) != 0 {
		t.Errorf("expected empty lists, got %d patients / %d alerts", len(snap.Patients), len(snap.Alerts))
	}
	if snap.LastSync.Status != StatusIdle {
		t.Errorf("expected idle status, got %s", snap.LastSync.Status)
	}
	if snap.APIEndpoint != "http://icu.example" {
		t.Errorf("unexpected endpoint %q", snap.APIEndpoint)
	}
}

func TestSetPatientsReplacesWholesale(t *testing.T) {
	s := New(100, "")
	s.SetPatients([]icu.Patient{{PatientID: 1}, {PatientID: 2}})
	s.SetPatients([]icu.Patient{{PatientID: 3}})

	got := s.Patients()
	if len(got) != 1 || got[0].PatientID != 3 {
		t.Errorf("expected wholesale replacement, got %+v", got)
	}
}

func TestBranchErrorPreservesList(t *testing.T) {
	s := New(100, "")
	s.SetAlerts([]icu.Alert{{PatientID: 1, Priority: 1, Message: "HR critical"}})
	s.SetAlertsError("connection refused")

	snap := s.TakeSnapshot()
	if len(snap.Alerts) != 1 || snap.Alerts[0].Message != "HR critical" {
		t.Errorf("alert list should survive a branch failure, got %+v", snap.Alerts)
	}
	if snap.AlertsError != "connection refused" {
		t.Errorf("expected branch error recorded, got %q", snap.AlertsError)
	}

	// A later success clears the branch error again.
	s.SetAlerts([]icu.Alert{})
	if e := s.TakeSnapshot().AlertsError; e != "" {
		t.Errorf("expected cleared error, got %q", e)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(100, "")
	s.SetPatients([]icu.Patient{{PatientID: 1, Name: "A"}})

	snap := s.TakeSnapshot()
	snap.Patients[0].Name = "mutated"

	if s.Patients()[0].Name != "A" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestServerHealthOverwritten(t *testing.T) {
	s := New(100, "")
	s.SetServerHealth(true, "")
	s.SetServerHealth(true, "")
	if !s.TakeSnapshot().Health.Online {
		t.Error("expected online after healthy probes")
	}

	s.SetServerHealth(false, "timeout")
	h := s.TakeSnapshot().Health
	if h.Online || h.Error != "timeout" {
		t.Errorf("single failed probe must flip offline, got %+v", h)
	}
}

func TestAddLogTrims(t *testing.T) {
	s := New(3, "")
	for i := 0; i < 5; i++ {
		s.AddLog("INFO", "Test", "entry")
	}
	if n := len(s.TakeSnapshot().Logs); n != 3 {
		t.Errorf("expected 3 logs after trim, got %d", n)
	}
}

func TestChangeNotification(t *testing.T) {
	s := New(100, "")
	s.SetPatients(nil)

	select {
	case <-s.ChangeCh():
	default:
		t.Error("expected a pending change notification")
	}

	// Repeated mutations without a reader must not block.
	for i := 0; i < 10; i++ {
		s.SetAlertsError("x")
	}
}
