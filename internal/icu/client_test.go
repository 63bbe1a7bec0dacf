package icu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("expected path /, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "online"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
}

func TestCheckHealthNotOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "maintenance"})
	}))
	defer srv.Close()

	if err := New(srv.URL).CheckHealth(context.Background()); err == nil {
		t.Fatal("expected error for non-online status")
	}
}

func TestTransportError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).CheckHealth(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestStatusErrorCarriesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListPatients(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("expected code 500, got %d", se.Code)
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListAlerts(context.Background())
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestListPatients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"patients": []Patient{
				{PatientID: 1, Name: "John Carter", Age: 54, Gender: "M", Ward: "ICU-A", Condition: "Sepsis"},
				{PatientID: 2, Name: "Mary Shaw", Age: 61, Gender: "F", Ward: "ICU-B", Condition: "Post-op"},
			},
		})
	}))
	defer srv.Close()

	patients, err := New(srv.URL).ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
	if patients[0].Name != "John Carter" || patients[1].Ward != "ICU-B" {
		t.Errorf("unexpected patient data: %+v", patients)
	}
}

func TestGetPatientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Patient not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetPatient(context.Background(), 999)
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestGetPatient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patient/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": Patient{
				PatientID: 7, Name: "Ana Ruiz", Age: 47, Gender: "F",
				Ward: "ICU-A", Condition: "ARDS", BloodType: "O+",
				Medications: []string{"Propofol", "Norepinephrine"},
			},
		})
	}))
	defer srv.Close()

	p, err := New(srv.URL).GetPatient(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPatient: %v", err)
	}
	if p.PatientID != 7 || p.BloodType != "O+" || len(p.Medications) != 2 {
		t.Errorf("unexpected patient: %+v", p)
	}
}

func TestListVitalsWindow(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"readings": []VitalReading{
				{PatientID: 3, Timestamp: 1700000000, HeartRate: 82, SystolicBP: 120, DiastolicBP: 80, SpO2: 97, Temperature: 37.1},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	readings, err := c.ListVitals(context.Background(), 3, 1700000000, 1700086400)
	if err != nil {
		t.Fatalf("ListVitals: %v", err)
	}
	if len(readings) != 1 || readings[0].HeartRate != 82 {
		t.Errorf("unexpected readings: %+v", readings)
	}
	if gotQuery != "start=1700000000&end=1700086400" {
		t.Errorf("unexpected query %q", gotQuery)
	}

	// Zero window: no query parameters at all.
	if _, err := c.ListVitals(context.Background(), 3, 0, 0); err != nil {
		t.Fatalf("ListVitals without window: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected no query params, got %q", gotQuery)
	}
}

func TestCreatePatient(t *testing.T) {
	var received Patient
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/patient" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	p := Patient{PatientID: 11, Name: "Tom Wallace", Age: 39, Gender: "M", Ward: "ICU-C", Condition: "Trauma", AdmissionDate: "2024-03-01"}
	if err := New(srv.URL).CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if !reflect.DeepEqual(received, p) {
		t.Errorf("server received %+v, want %+v", received, p)
	}
}

func TestCreateAlertRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error"})
	}))
	defer srv.Close()

	err := New(srv.URL).CreateAlert(context.Background(), Alert{PatientID: 1, Priority: 2, Message: "SpO2 dropping"})
	if err == nil {
		t.Fatal("expected error for rejected alert")
	}
}

func TestHeaderOverride(t *testing.T) {
	var gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	var out map[string]any
	err := c.do(context.Background(), http.MethodGet, "/", nil, map[string]string{"Content-Type": "text/plain"}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotCT != "text/plain" {
		t.Errorf("expected overridden content type, got %q", gotCT)
	}
}
