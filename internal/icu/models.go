package icu

// Patient is a patient record as served by the monitoring API.
type Patient struct {
	PatientID     int      `json:"patientID"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	Ward          string   `json:"ward"`
	Condition     string   `json:"condition"`
	BloodType     string   `json:"bloodType,omitempty"`
	AdmissionDate string   `json:"admissionDate"`
	Medications   []string `json:"medications,omitempty"`
}

// VitalReading is one timestamped set of vital signs for a patient.
// Readings arrive in chronological order, oldest first.
type VitalReading struct {
	PatientID   int     `json:"patientID"`
	Timestamp   int64   `json:"timestamp"`
	HeartRate   int     `json:"heart_rate"`
	SystolicBP  int     `json:"systolic_bp"`
	DiastolicBP int     `json:"diastolic_bp"`
	SpO2        int     `json:"spo2"`
	Temperature float64 `json:"temperature"`
}

// Alert is a monitoring alert. Priority runs 1 (critical) to 5 (info).
// The server decides ordering and limit of the alert feed.
type Alert struct {
	PatientID int    `json:"patientID"`
	Priority  int    `json:"priority"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
