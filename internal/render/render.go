// Package render turns fetched ICU data into HTML fragments. Every renderer
// is a pure function: same input, same markup, no state reads, no escaping
// surprises. The web layer decides where fragments go; nothing here touches
// the network or the DOM wiring.
package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
)

// Fixed fragments for empty and error regions.
const (
	emptyPatients = `<div class="empty-state"><div class="empty-state-icon">👥</div><p>No patients yet. Click "Add Patient" to get started.</p></div>`
	emptyAlerts   = `<p class="loading">No alerts. All patients stable. ✅</p>`
	errPatients   = `<p class="loading">Error loading patients. Check logs.</p>`
	errAlerts     = `<p class="loading">Error loading alerts. Check logs.</p>`
)

// maxAlertCards is how many alerts the feed shows. The server decides the
// ordering; the first entries are displayed as received, never re-sorted.
const maxAlertCards = 5

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// bloodType renders a blood type with the N/A fallback.
func bloodType(bt string) string {
	if bt == "" {
		return "N/A"
	}
	return esc(bt)
}

// genderGlyph picks the card glyph for a gender value.
func genderGlyph(gender string) string {
	if gender == "M" {
		return "👨"
	}
	return "👩"
}

// PatientList renders one card per patient, or the fixed empty-state fragment.
// Cards carry their patient ID in a data attribute; click wiring lives in the
// web layer's dispatch table.
func PatientList(patients []icu.Patient) string {
	if len(patients) == 0 {
		return emptyPatients
	}

	var b strings.Builder
	for _, p := range patients {
		fmt.Fprintf(&b, `<div class="patient-card" data-patient-id="%d">`, p.PatientID)
		fmt.Fprintf(&b, `<div class="patient-header"><span class="patient-id">ID: %d</span><span>%s</span></div>`,
			p.PatientID, genderGlyph(p.Gender))
		fmt.Fprintf(&b, `<div class="patient-name">%s</div>`, esc(p.Name))
		fmt.Fprintf(&b, `<div class="patient-info"><div>📅 Age: %d</div><div>🏥 Ward: %s</div><div>💉 Blood: %s</div><div>📋 %s</div></div>`,
			p.Age, esc(p.Ward), bloodType(p.BloodType), esc(p.Condition))
		b.WriteString(`</div>`)
	}
	return b.String()
}

// AlertList renders the first five alerts in server order, or the fixed
// all-stable fragment.
func AlertList(alerts []icu.Alert) string {
	if len(alerts) == 0 {
		return emptyAlerts
	}

	top := alerts
	if len(top) > maxAlertCards {
		top = top[:maxAlertCards]
	}

	var b strings.Builder
	for _, a := range top {
		d := DescriptorFor(a.Priority)
		ts := time.Unix(a.Timestamp, 0).Format("1/2/2006, 3:04:05 PM")
		fmt.Fprintf(&b, `<div class="alert-card priority-%d">`, a.Priority)
		fmt.Fprintf(&b, `<div class="alert-icon">%s</div>`, d.Icon)
		b.WriteString(`<div class="alert-content">`)
		fmt.Fprintf(&b, `<div class="alert-priority" style="color: %s">%s</div>`, d.Color, d.Name)
		fmt.Fprintf(&b, `<div class="alert-message"><strong>Patient %d:</strong> %s</div>`, a.PatientID, esc(a.Message))
		fmt.Fprintf(&b, `<div class="alert-meta">%s</div>`, ts)
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// PatientDetail renders the composite detail view: header fields, the latest
// reading from the supplied history in a four-box grid, medications and a
// reading count. The readings slice is chronological, so the last element is
// the latest.
func PatientDetail(p icu.Patient, readings []icu.VitalReading) string {
	var b strings.Builder

	b.WriteString(`<div class="patient-details-header">`)
	fmt.Fprintf(&b, `<h2>%s</h2>`, esc(p.Name))
	fmt.Fprintf(&b, `<p>Patient ID: %d | Age: %d | Gender: %s</p>`, p.PatientID, p.Age, esc(p.Gender))
	fmt.Fprintf(&b, `<p>Ward: %s | Blood Type: %s</p>`, esc(p.Ward), bloodType(p.BloodType))
	fmt.Fprintf(&b, `<p>Condition: %s</p>`, esc(p.Condition))

	if len(readings) > 0 {
		latest := readings[len(readings)-1]
		b.WriteString(`<div class="vitals-grid">`)
		fmt.Fprintf(&b, `<div class="vital-box"><div class="vital-label">Heart Rate</div><div class="vital-value">%d <small>bpm</small></div></div>`, latest.HeartRate)
		fmt.Fprintf(&b, `<div class="vital-box"><div class="vital-label">Blood Pressure</div><div class="vital-value">%d/%d</div></div>`, latest.SystolicBP, latest.DiastolicBP)
		fmt.Fprintf(&b, `<div class="vital-box"><div class="vital-label">SpO2</div><div class="vital-value">%d%%</div></div>`, latest.SpO2)
		fmt.Fprintf(&b, `<div class="vital-box"><div class="vital-label">Temperature</div><div class="vital-value">%.1f°C</div></div>`, latest.Temperature)
		b.WriteString(`</div>`)
	} else {
		b.WriteString(`<p class="no-vitals">No vital signs recorded yet.</p>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="detail-section"><h3>Medications</h3>`)
	if len(p.Medications) > 0 {
		b.WriteString(`<ul>`)
		for _, med := range p.Medications {
			fmt.Fprintf(&b, `<li>%s</li>`, esc(med))
		}
		b.WriteString(`</ul>`)
	} else {
		b.WriteString(`<p>No medications recorded.</p>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="detail-section"><h3>Vital Signs History</h3>`)
	if len(readings) > 0 {
		fmt.Fprintf(&b, `<p>Total readings: %d</p>`, len(readings))
	} else {
		b.WriteString(`<p>No vital signs history.</p>`)
	}
	b.WriteString(`</div>`)

	return b.String()
}

// Status renders the connectivity indicator.
func Status(online bool) string {
	if online {
		return `<span class="status-indicator online"></span><span class="status-text">Server Online</span>`
	}
	return `<span class="status-indicator offline"></span><span class="status-text">Server Offline</span>`
}

// PatientsError is the fixed placeholder for a failed patient fetch.
func PatientsError() string { return errPatients }

// AlertsError is the fixed placeholder for a failed alert fetch.
func AlertsError() string { return errAlerts }
