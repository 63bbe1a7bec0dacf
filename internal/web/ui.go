package web

import (
	"fmt"
	"net/http"
	"strings"
)

// handleUI serves the embedded UI.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, strings.ReplaceAll(uiHTML, "{{APP_VERSION}}", s.version))
}

const uiHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>IntelliCare ICU Dashboard</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: #0f172a;
    color: #e2e8f0;
    min-height: 100vh;
  }
  .container { max-width: 1200px; margin: 0 auto; padding: 24px; }

  .header {
    display: flex;
    justify-content: space-between;
    align-items: center;
    margin-bottom: 32px;
    padding-bottom: 16px;
    border-bottom: 1px solid #1e293b;
  }
  .header h1 {
    font-size: 24px;
    font-weight: 700;
    color: #fff;
    letter-spacing: -0.5px;
  }
  .header h1 span { color: #38bdf8; }
  .header-right { display: flex; align-items: center; gap: 14px; }

  .server-status { display: flex; align-items: center; gap: 8px; font-size: 13px; }
  .status-indicator {
    width: 10px;
    height: 10px;
    border-radius: 50%;
    background: #475569;
  }
  .status-indicator.online { background: #4ade80; box-shadow: 0 0 6px #4ade80; }
  .status-indicator.offline { background: #f87171; box-shadow: 0 0 6px #f87171; }
  .status-text { color: #94a3b8; }

  .btn {
    background: #0ea5e9;
    color: #fff;
    border: none;
    padding: 10px 20px;
    border-radius: 8px;
    font-size: 14px;
    font-weight: 600;
    cursor: pointer;
    transition: background 0.2s;
  }
  .btn:hover { background: #0284c7; }
  .btn:disabled { background: #1e293b; color: #475569; cursor: not-allowed; }
  .btn-secondary { background: #1e293b; border: 1px solid #334155; }
  .btn-secondary:hover { background: #334155; }

  .panels {
    display: grid;
    grid-template-columns: 2fr 1fr;
    gap: 16px;
    margin-bottom: 24px;
  }
  @media (max-width: 900px) { .panels { grid-template-columns: 1fr; } }
  .panel {
    background: #1e293b;
    border: 1px solid #334155;
    border-radius: 12px;
    overflow: hidden;
  }
  .panel-header {
    padding: 16px 20px;
    border-bottom: 1px solid #334155;
    font-size: 14px;
    font-weight: 600;
    color: #fff;
    display: flex;
    justify-content: space-between;
    align-items: center;
  }
  .panel-header .count {
    background: #334155;
    padding: 2px 8px;
    border-radius: 4px;
    font-size: 12px;
    color: #94a3b8;
  }
  .panel-body { padding: 16px 20px; max-height: 560px; overflow-y: auto; }
  .panel-body::-webkit-scrollbar { width: 6px; }
  .panel-body::-webkit-scrollbar-track { background: #0f172a; }
  .panel-body::-webkit-scrollbar-thumb { background: #334155; border-radius: 3px; }

  .empty-state { text-align: center; padding: 40px 0; color: #64748b; }
  .empty-state-icon { font-size: 40px; margin-bottom: 10px; }
  .loading { color: #64748b; padding: 20px 0; text-align: center; }

  .patient-card {
    background: #0f172a;
    border: 1px solid #334155;
    border-radius: 10px;
    padding: 14px 16px;
    margin-bottom: 12px;
    cursor: pointer;
    transition: border-color 0.15s;
  }
  .patient-card:hover { border-color: #38bdf8; }
  .patient-header {
    display: flex;
    justify-content: space-between;
    font-size: 12px;
    color: #64748b;
    margin-bottom: 6px;
  }
  .patient-name { font-size: 16px; font-weight: 600; color: #fff; margin-bottom: 8px; }
  .patient-info {
    display: grid;
    grid-template-columns: 1fr 1fr;
    gap: 4px;
    font-size: 12px;
    color: #94a3b8;
  }

  .alert-card {
    display: flex;
    gap: 12px;
    background: #0f172a;
    border: 1px solid #334155;
    border-left-width: 4px;
    border-radius: 8px;
    padding: 12px 14px;
    margin-bottom: 10px;
  }
  .alert-card.priority-1 { border-left-color: #dc3545; }
  .alert-card.priority-2 { border-left-color: #fd7e14; }
  .alert-card.priority-3 { border-left-color: #ffc107; }
  .alert-card.priority-4 { border-left-color: #28a745; }
  .alert-card.priority-5 { border-left-color: #17a2b8; }
  .alert-icon { font-size: 18px; }
  .alert-priority { font-size: 11px; font-weight: 700; letter-spacing: 0.06em; }
  .alert-message { font-size: 13px; color: #e2e8f0; margin: 4px 0; }
  .alert-meta { font-size: 11px; color: #64748b; }

  .logs-panel {
    background: #1e293b;
    border: 1px solid #334155;
    border-radius: 12px;
    overflow: hidden;
  }
  .logs-panel.collapsed .logs-container { display: none; }
  .logs-header {
    padding: 16px 20px;
    font-size: 14px;
    font-weight: 600;
    color: #fff;
    display: flex;
    justify-content: space-between;
    align-items: center;
    cursor: pointer;
    user-select: none;
  }
  .logs-container {
    height: 260px;
    overflow-y: auto;
    padding: 12px 0;
    border-top: 1px solid #334155;
    font-family: 'SF Mono', 'Fira Code', monospace;
    font-size: 12px;
    line-height: 1.6;
  }
  .log-entry { padding: 2px 20px; }
  .log-ts { color: #475569; }
  .log-error { color: #f87171; }
  .log-label { color: #94a3b8; }

  .refresh-indicator {
    font-size: 11px;
    color: #475569;
    text-align: center;
    padding: 16px;
  }

  /* Modals */
  .modal {
    display: none;
    position: fixed;
    z-index: 1000;
    inset: 0;
    background-color: rgba(0, 0, 0, 0.7);
  }
  .modal.show { display: flex; align-items: center; justify-content: center; }
  .modal-content {
    background: #1e293b;
    border: 1px solid #334155;
    border-radius: 12px;
    max-width: 720px;
    width: 90%;
    max-height: 85vh;
    display: flex;
    flex-direction: column;
  }
  .modal-header {
    padding: 18px 24px;
    display: flex;
    justify-content: space-between;
    align-items: center;
    border-bottom: 1px solid #334155;
  }
  .modal-title { font-size: 16px; font-weight: 600; color: #fff; }
  .modal-close {
    background: none;
    border: none;
    color: #94a3b8;
    font-size: 24px;
    cursor: pointer;
    width: 32px;
    height: 32px;
    border-radius: 6px;
  }
  .modal-close:hover { background: #334155; color: #fff; }
  .modal-body { padding: 24px; overflow-y: auto; flex: 1; font-size: 14px; line-height: 1.6; }

  .patient-details-header h2 { color: #fff; margin-bottom: 8px; }
  .patient-details-header p { color: #94a3b8; font-size: 13px; margin-bottom: 4px; }
  .vitals-grid {
    display: grid;
    grid-template-columns: repeat(4, 1fr);
    gap: 10px;
    margin-top: 16px;
  }
  @media (max-width: 600px) { .vitals-grid { grid-template-columns: repeat(2, 1fr); } }
  .vital-box {
    background: #0f172a;
    border: 1px solid #334155;
    border-radius: 8px;
    padding: 12px;
    text-align: center;
  }
  .vital-label { font-size: 11px; color: #64748b; text-transform: uppercase; letter-spacing: 0.05em; }
  .vital-value { font-size: 18px; font-weight: 700; color: #38bdf8; margin-top: 4px; }
  .no-vitals { margin-top: 16px; color: #64748b; }
  .detail-section { margin-top: 24px; }
  .detail-section h3 { color: #fff; font-size: 14px; margin-bottom: 8px; }
  .detail-section ul { padding-left: 20px; color: #94a3b8; }
  .detail-section p { color: #94a3b8; font-size: 13px; }

  .form-field { margin-bottom: 14px; }
  .form-field label {
    display: block;
    font-size: 12px;
    font-weight: 500;
    color: #94a3b8;
    margin-bottom: 5px;
  }
  .form-field input, .form-field select {
    width: 100%;
    background: #0f172a;
    border: 1px solid #334155;
    border-radius: 8px;
    color: #e2e8f0;
    font-size: 14px;
    padding: 9px 12px;
    outline: none;
  }
  .form-field input:focus, .form-field select:focus { border-color: #38bdf8; }
  .form-row { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>🏥 IntelliCare <span>ICU</span></h1>
    <div class="header-right">
      <div class="server-status" id="serverStatus">
        <span class="status-indicator"></span><span class="status-text">Connecting...</span>
      </div>
      <button class="btn btn-secondary" data-action="refresh">Refresh</button>
      <button class="btn" data-action="add-patient">+ Add Patient</button>
    </div>
  </div>

  <div class="panels">
    <div class="panel">
      <div class="panel-header">Patients <span class="count" id="patientCount">0</span></div>
      <div class="panel-body" id="patientsList"><p class="loading">Loading patients...</p></div>
    </div>
    <div class="panel">
      <div class="panel-header">Critical Alerts <span class="count" id="alertCount">0</span></div>
      <div class="panel-body" id="alertsList"><p class="loading">Loading alerts...</p></div>
    </div>
  </div>

  <div class="logs-panel collapsed" id="logsPanel">
    <div class="logs-header" data-action="toggle-logs"><span>Logs</span><span>▼</span></div>
    <div class="logs-container" id="logs"></div>
  </div>

  <div class="refresh-indicator">IntelliCare ICU Dashboard {{APP_VERSION}} · Real-time updates</div>
</div>

<div class="modal" id="patientModal">
  <div class="modal-content">
    <div class="modal-header">
      <div class="modal-title">Patient Details</div>
      <button class="modal-close" data-action="close-detail">&times;</button>
    </div>
    <div class="modal-body" id="patientDetails"></div>
  </div>
</div>

<div class="modal" id="addPatientModal">
  <div class="modal-content">
    <div class="modal-header">
      <div class="modal-title">Add Patient</div>
      <button class="modal-close" data-action="close-add">&times;</button>
    </div>
    <div class="modal-body">
      <form id="addPatientForm">
        <div class="form-row">
          <div class="form-field">
            <label for="f-patientID">Patient ID</label>
            <input id="f-patientID" name="patientID" type="number" required>
          </div>
          <div class="form-field">
            <label for="f-age">Age</label>
            <input id="f-age" name="age" type="number" min="0" required>
          </div>
        </div>
        <div class="form-field">
          <label for="f-name">Name</label>
          <input id="f-name" name="name" type="text" required>
        </div>
        <div class="form-row">
          <div class="form-field">
            <label for="f-gender">Gender</label>
            <select id="f-gender" name="gender"><option value="M">Male</option><option value="F">Female</option><option value="other">Other</option></select>
          </div>
          <div class="form-field">
            <label for="f-bloodType">Blood Type</label>
            <input id="f-bloodType" name="bloodType" type="text" placeholder="O+">
          </div>
        </div>
        <div class="form-row">
          <div class="form-field">
            <label for="f-ward">Ward</label>
            <input id="f-ward" name="ward" type="text" placeholder="ICU-A" required>
          </div>
          <div class="form-field">
            <label for="f-admissionDate">Admission Date</label>
            <input id="f-admissionDate" name="admissionDate" type="date" required>
          </div>
        </div>
        <div class="form-field">
          <label for="f-condition">Condition</label>
          <input id="f-condition" name="condition" type="text" required>
        </div>
        <button class="btn" type="submit" style="width:100%;margin-top:8px">Add Patient</button>
      </form>
    </div>
  </div>
</div>

<script>
(function() {
  var ws = null;
  var wsReconnectDelay = 1000;

  function esc(s) {
    return String(s).replace(/&/g,'&amp;').replace(/</g,'&lt;').replace(/>/g,'&gt;');
  }

  function applyPayload(p) {
    document.getElementById('serverStatus').innerHTML = p.status;
    document.getElementById('patientsList').innerHTML = p.patients;
    document.getElementById('alertsList').innerHTML = p.alerts;
    document.getElementById('patientCount').textContent = p.patientCount;
    document.getElementById('alertCount').textContent = p.alertCount;

    var logs = document.getElementById('logs');
    logs.innerHTML = (p.logs && p.logs.length > 0)
      ? p.logs.map(function(l) {
          var cls = l.level === 'ERROR' ? ' log-error' : '';
          var ts = new Date(l.timestamp).toLocaleTimeString();
          return '<div class="log-entry' + cls + '"><span class="log-ts">' + ts + '</span> ' +
            '<span class="log-label">[' + esc(l.label) + ']</span> ' + esc(l.message) + '</div>';
        }).join('')
      : '<div class="log-entry" style="color:#475569">No logs yet</div>';
    logs.scrollTop = logs.scrollHeight;
  }

  async function showPatientDetails(patientID) {
    try {
      var r = await fetch('/api/patient/' + patientID + '/detail');
      if (r.status === 404) {
        alert('Patient not found');
        return;
      }
      if (!r.ok) {
        alert('Error loading patient details');
        return;
      }
      document.getElementById('patientDetails').innerHTML = await r.text();
      document.getElementById('patientModal').classList.add('show');
    } catch(e) {
      alert('Error loading patient details');
    }
  }

  async function triggerRefresh() {
    try {
      var r = await fetch('/api/refresh', { method: 'POST' });
      var d = await r.json();
      if (d.status === 'already running') alert('Sync already in progress');
    } catch(e) {
      alert('Failed to trigger refresh');
    }
  }

  async function submitPatient(form) {
    var fd = new FormData(form);
    var body = {};
    fd.forEach(function(v, k) { body[k] = v; });
    try {
      var r = await fetch('/api/patients', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
      });
      var d = await r.json();
      if (d.status === 'success') {
        alert('Patient added successfully!');
        document.getElementById('addPatientModal').classList.remove('show');
        form.reset();
      } else {
        alert('Error adding patient. See logs for details.');
      }
    } catch(e) {
      alert('Error adding patient. See logs for details.');
    }
  }

  // Dispatch table: element roles -> behaviour. Markup stays free of inline
  // handlers; everything routes through these two listeners.
  var actions = {
    'refresh': triggerRefresh,
    'add-patient': function() { document.getElementById('addPatientModal').classList.add('show'); },
    'close-add': function() {
      document.getElementById('addPatientModal').classList.remove('show');
      document.getElementById('addPatientForm').reset();
    },
    'close-detail': function() { document.getElementById('patientModal').classList.remove('show'); },
    'toggle-logs': function() { document.getElementById('logsPanel').classList.toggle('collapsed'); }
  };

  document.addEventListener('click', function(e) {
    var actionEl = e.target.closest('[data-action]');
    if (actionEl && actions[actionEl.dataset.action]) {
      actions[actionEl.dataset.action]();
      return;
    }
    var card = e.target.closest('[data-patient-id]');
    if (card) {
      showPatientDetails(parseInt(card.dataset.patientId, 10));
      return;
    }
    // Click on a modal backdrop closes it.
    if (e.target.id === 'patientModal') actions['close-detail']();
    if (e.target.id === 'addPatientModal') actions['close-add']();
  });

  document.getElementById('addPatientForm').addEventListener('submit', function(e) {
    e.preventDefault();
    submitPatient(e.target);
  });

  document.addEventListener('keydown', function(e) {
    if (e.key === 'Escape') {
      actions['close-detail']();
      document.getElementById('addPatientModal').classList.remove('show');
    }
  });

  // WebSocket connection
  function connectWebSocket() {
    var protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
    try {
      ws = new WebSocket(protocol + '//' + window.location.host + '/ws');
      ws.onopen = function() { wsReconnectDelay = 1000; };
      ws.onmessage = function(event) {
        try { applyPayload(JSON.parse(event.data)); } catch(e) {}
      };
      ws.onclose = function() {
        ws = null;
        wsReconnectDelay = Math.min(wsReconnectDelay * 1.5, 10000);
        setTimeout(connectWebSocket, wsReconnectDelay);
      };
    } catch(e) {
      setTimeout(connectWebSocket, wsReconnectDelay);
    }
  }

  async function fetchPayload() {
    try {
      var r = await fetch('/api/payload');
      applyPayload(await r.json());
    } catch(e) {}
  }

  connectWebSocket();

  // Fallback polling, only while the WebSocket is down.
  setInterval(function() {
    if (!ws || ws.readyState !== WebSocket.OPEN) {
      fetchPayload();
    }
  }, 5000);
})();
</script>
</body>
</html>`
