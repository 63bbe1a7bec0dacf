package state

import (
	"sync"
	"time"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
)

// SyncStatus represents the status of the last sync cycle.
type SyncStatus string

const (
	StatusIdle    SyncStatus = "idle"
	StatusRunning SyncStatus = "running"
	StatusSuccess SyncStatus = "success"
	StatusPartial SyncStatus = "partial" // one branch failed, the other committed
	StatusFailed  SyncStatus = "failed"
)

// ServerHealth holds the result of the last connectivity probe.
type ServerHealth struct {
	Online    bool      `json:"online"`
	LastCheck time.Time `json:"lastCheck"`
	Error     string    `json:"error,omitempty"`
}

// SyncInfo holds information about the last sync cycle.
type SyncInfo struct {
	Status     SyncStatus `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// LogEntry holds a single log entry for the dashboard log panel.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Label     string    `json:"label"`
	Message   string    `json:"message"`
}

// Snapshot holds a point-in-time copy of DashState for rendering and JSON
// serialization.
type Snapshot struct {
	APIEndpoint   string        `json:"apiEndpoint"`
	Health        ServerHealth  `json:"health"`
	LastSync      SyncInfo      `json:"lastSync"`
	Patients      []icu.Patient `json:"patients"`
	PatientsError string        `json:"patientsError,omitempty"`
	Alerts        []icu.Alert   `json:"alerts"`
	AlertsError   string        `json:"alertsError,omitempty"`
	Logs          []LogEntry    `json:"logs"`
}

// DashState is the view-state store: the last successfully fetched patient and
// alert lists plus connectivity and sync metadata. The patient and alert
// branches commit independently; a failed fetch leaves the previous list in
// place and records the branch error instead.
type DashState struct {
	mu            sync.RWMutex
	apiEndpoint   string
	health        ServerHealth
	lastSync      SyncInfo
	patients      []icu.Patient
	patientsError string
	alerts        []icu.Alert
	alertsError   string
	logs          []LogEntry
	maxLogs       int
	changeCh      chan struct{} // signalled on every mutation
}

// New creates an empty DashState with a bounded log buffer.
func New(maxLogs int, apiEndpoint string) *DashState {
	return &DashState{
		apiEndpoint: apiEndpoint,
		patients:    []icu.Patient{},
		alerts:      []icu.Alert{},
		logs:        []LogEntry{},
		maxLogs:     maxLogs,
		changeCh:    make(chan struct{}, 1),
		lastSync: SyncInfo{
			Status: StatusIdle,
		},
	}
}

// notifyChange does a non-blocking send on changeCh to signal a state
// mutation. Must be called while NOT holding mu (the receiver in the web
// layer will re-read state).
func (s *DashState) notifyChange() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}

// ChangeCh returns a channel that receives a value whenever the state changes.
func (s *DashState) ChangeCh() <-chan struct{} {
	return s.changeCh
}

// SetServerHealth overwrites the connectivity probe result.
func (s *DashState) SetServerHealth(online bool, errMsg string) {
	s.mu.Lock()
	s.health = ServerHealth{
		Online:    online,
		LastCheck: time.Now().UTC(),
		Error:     errMsg,
	}
	s.mu.Unlock()
	s.notifyChange()
}

// SetPatients replaces the patient list wholesale and clears the branch error.
func (s *DashState) SetPatients(patients []icu.Patient) {
	s.mu.Lock()
	s.patients = patients
	s.patientsError = ""
	s.mu.Unlock()
	s.notifyChange()
}

// SetPatientsError records a failed patient fetch. The previous patient list
// is left untouched.
func (s *DashState) SetPatientsError(errMsg string) {
	s.mu.Lock()
	s.patientsError = errMsg
	s.mu.Unlock()
	s.notifyChange()
}

// SetAlerts replaces the alert list wholesale and clears the branch error.
func (s *DashState) SetAlerts(alerts []icu.Alert) {
	s.mu.Lock()
	s.alerts = alerts
	s.alertsError = ""
	s.mu.Unlock()
	s.notifyChange()
}

// SetAlertsError records a failed alert fetch. The previous alert list is
// left untouched.
func (s *DashState) SetAlertsError(errMsg string) {
	s.mu.Lock()
	s.alertsError = errMsg
	s.mu.Unlock()
	s.notifyChange()
}

// SetSyncStarted marks a sync cycle as started.
func (s *DashState) SetSyncStarted() {
	s.mu.Lock()
	s.lastSync = SyncInfo{
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.mu.Unlock()
	s.notifyChange()
}

// SetSyncFinished marks a sync cycle as finished with the given outcome.
func (s *DashState) SetSyncFinished(status SyncStatus) {
	s.mu.Lock()
	s.lastSync.Status = status
	s.lastSync.FinishedAt = time.Now().UTC()
	s.mu.Unlock()
	s.notifyChange()
}

// AddLog appends a log entry, trimming old entries if needed.
func (s *DashState) AddLog(level, label, message string) {
	s.mu.Lock()
	s.logs = append(s.logs, LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Label:     label,
		Message:   message,
	})
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
	s.mu.Unlock()
	s.notifyChange()
}

// Patients returns a copy of the current patient list.
func (s *DashState) Patients() []icu.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]icu.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// Alerts returns a copy of the current alert list.
func (s *DashState) Alerts() []icu.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]icu.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// TakeSnapshot returns a copy of the current state for rendering and JSON
// serialization.
func (s *DashState) TakeSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := make([]icu.Patient, len(s.patients))
	copy(patients, s.patients)
	alerts := make([]icu.Alert, len(s.alerts))
	copy(alerts, s.alerts)
	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)

	return Snapshot{
		APIEndpoint:   s.apiEndpoint,
		Health:        s.health,
		LastSync:      s.lastSync,
		Patients:      patients,
		PatientsError: s.patientsError,
		Alerts:        alerts,
		AlertsError:   s.alertsError,
		Logs:          logs,
	}
}
