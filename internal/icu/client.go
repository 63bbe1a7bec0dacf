package icu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Client is a thin typed wrapper around the ICU monitoring API. It performs
// single attempts only: no retries, no backoff. Every failure is logged with
// a request correlation ID before it is returned to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL. A trailing slash is tolerated.
func New(baseURL string) *Client {
	for len(baseURL) > 1 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// do issues one request and decodes the JSON response body into out.
// Content-Type is application/json unless overridden via headers.
func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	reqID := uuid.NewString()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return c.fail(reqID, method, path, &TransportError{Err: err})
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return c.fail(reqID, method, path, &TransportError{Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(reqID, method, path, &TransportError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(reqID, method, path, &StatusError{Code: resp.StatusCode})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(reqID, method, path, &DecodeError{Err: err})
		}
	}
	return nil
}

// fail logs a request failure and passes the error through unchanged.
func (c *Client) fail(reqID, method, path string, err error) error {
	slog.Error("API request failed",
		"component", "API",
		"request_id", reqID,
		"method", method,
		"path", path,
		"error", err,
	)
	return err
}

// ============================================================
// Connectivity
// ============================================================

// CheckHealth probes the server root endpoint. It returns nil only when the
// server answers with status "online".
func (c *Client) CheckHealth(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "online" {
		return fmt.Errorf("icu: server reported status %q", resp.Status)
	}
	return nil
}

// ============================================================
// Patients
// ============================================================

// ListPatients fetches every patient record.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var resp struct {
		Status   string    `json:"status"`
		Patients []Patient `json:"patients"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/patients", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Patients, nil
}

// GetPatient fetches a single patient record by ID. A server answer without a
// success status is reported as ErrPatientNotFound.
func (c *Client) GetPatient(ctx context.Context, patientID int) (Patient, error) {
	var resp struct {
		Status string  `json:"status"`
		Data   Patient `json:"data"`
	}
	path := fmt.Sprintf("/api/patient/%d", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return Patient{}, err
	}
	if resp.Status != "success" {
		return Patient{}, ErrPatientNotFound
	}
	return resp.Data, nil
}

// CreatePatient registers a new patient record.
func (c *Client) CreatePatient(ctx context.Context, p Patient) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/patient", p, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("icu: create patient rejected: status %q", resp.Status)
	}
	return nil
}

// ============================================================
// Vitals
// ============================================================

// ListVitals fetches vital readings for a patient. When start and end are both
// non-zero they bound the window as Unix seconds; otherwise the server default
// window applies. Readings come back in chronological order.
func (c *Client) ListVitals(ctx context.Context, patientID int, start, end int64) ([]VitalReading, error) {
	path := fmt.Sprintf("/api/vitals/%d", patientID)
	if start != 0 && end != 0 {
		path += fmt.Sprintf("?start=%d&end=%d", start, end)
	}
	var resp struct {
		Readings []VitalReading `json:"readings"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Readings, nil
}

// CreateVital records a new vital reading.
func (c *Client) CreateVital(ctx context.Context, v VitalReading) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/vitals", v, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("icu: create vital rejected: status %q", resp.Status)
	}
	return nil
}

// ============================================================
// Alerts
// ============================================================

// ListAlerts fetches the alert feed. Ordering and limit are server-defined;
// the slice is returned exactly as received.
func (c *Client) ListAlerts(ctx context.Context) ([]Alert, error) {
	var resp struct {
		Status string  `json:"status"`
		Alerts []Alert `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/alerts", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// CreateAlert raises a new alert.
func (c *Client) CreateAlert(ctx context.Context, a Alert) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/alert", a, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("icu: create alert rejected: status %q", resp.Status)
	}
	return nil
}
