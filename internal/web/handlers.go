package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/render"
)

// handleState returns the current view state as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.dashState.TakeSnapshot())
}

// handlePayload returns the rendered push payload. The page falls back to
// polling this while its websocket is down.
func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildPayload(s.dashState.TakeSnapshot()))
}

// handleRefresh triggers a full sync cycle.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	select {
	case s.triggerFull <- struct{}{}:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "triggered"})
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"status": "already running"})
	}
}

// handlePatientDetail serves GET /api/patient/{id}/detail: it fetches the
// patient record and the trailing vitals window from the monitoring API and
// returns the composite detail fragment. The fragment is produced only after
// both fetches succeed.
func (s *Server) handlePatientDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/patient/")
	idStr, ok := strings.CutSuffix(rest, "/detail")
	if !ok {
		http.NotFound(w, r)
		return
	}
	patientID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	patient, err := s.client.GetPatient(r.Context(), patientID)
	if errors.Is(err, icu.ErrPatientNotFound) {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logError("Patient detail fetch failed", "patientID", patientID, "error", err)
		http.Error(w, "Error loading patient details", http.StatusBadGateway)
		return
	}

	// Trailing window ending now, 24 hours by default.
	end := s.now().Unix()
	start := end - int64(s.cfg.VitalsWindow.Seconds())
	readings, err := s.client.ListVitals(r.Context(), patientID, start, end)
	if err != nil {
		s.logError("Vitals fetch failed", "patientID", patientID, "error", err)
		http.Error(w, "Error loading patient details", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, render.PatientDetail(patient, readings))
}

// addPatientRequest carries the raw form values from the add-patient modal.
// patientID and age arrive as strings and are coerced here.
type addPatientRequest struct {
	PatientID     string `json:"patientID"`
	Name          string `json:"name"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	Ward          string `json:"ward"`
	Condition     string `json:"condition"`
	AdmissionDate string `json:"admissionDate"`
	BloodType     string `json:"bloodType"`
}

// handleAddPatient serves POST /api/patients: it posts the submitted record to
// the monitoring API and, on success, triggers a patient-list refresh. The
// alert list is deliberately left alone.
func (s *Server) handleAddPatient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req addPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patientID, err := strconv.Atoi(req.PatientID)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}
	age, err := strconv.Atoi(req.Age)
	if err != nil || age < 0 {
		http.Error(w, "Invalid age", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	patient := icu.Patient{
		PatientID:     patientID,
		Name:          req.Name,
		Age:           age,
		Gender:        req.Gender,
		Ward:          req.Ward,
		Condition:     req.Condition,
		AdmissionDate: req.AdmissionDate,
		BloodType:     req.BloodType,
	}

	if err := s.client.CreatePatient(r.Context(), patient); err != nil {
		s.logError("Add patient failed", "patientID", patientID, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "Error adding patient",
		})
		return
	}

	s.logInfo("Patient added", "patientID", patientID, "name", req.Name)

	// Refresh the patient list only; non-blocking so a busy scheduler just
	// picks it up on the pending trigger.
	select {
	case s.triggerPatients <- struct{}{}:
	default:
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

func (s *Server) logInfo(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Web"}, attrs...)
	slog.Info(msg, allAttrs...)
	s.dashState.AddLog("INFO", "Web", msg)
}

func (s *Server) logError(msg string, attrs ...any) {
	allAttrs := append([]any{"component", "Web"}, attrs...)
	slog.Error(msg, allAttrs...)
	s.dashState.AddLog("ERROR", "Web", msg)
}
