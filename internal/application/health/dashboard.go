package health

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// RenderDashboardHTML returns the status page for GET /. The collected
// health is embedded so the page renders without a second round trip; the
// script then polls /health/json a few times.
func RenderDashboardHTML(h CollectResult) string {
	b, _ := json.Marshal(h)
	jsonStr := string(b)
	// Embedded in a JS template literal.
	jsonStr = strings.ReplaceAll(jsonStr, "\\", "\\\\")
	jsonStr = strings.ReplaceAll(jsonStr, "`", "\\`")
	jsonStr = strings.ReplaceAll(jsonStr, "$", "\\$")

	headline := "All Systems Operational"
	if h.Status != "ok" {
		headline = "System Issues Detected"
	}

	lastMethod, lastPath := "-", "-"
	if m, ok := h.Traffic.LastRequest.(map[string]interface{}); ok {
		if v, ok := m["method"].(string); ok {
			lastMethod = v
		}
		if v, ok := m["path"].(string); ok {
			lastPath = v
		}
	}

	names := make([]string, 0, len(h.Dependencies))
	for name := range h.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	var deps strings.Builder
	for _, name := range names {
		d := h.Dependencies[name]
		class := "ok"
		if d.Status != "connected" && d.Status != "reachable" {
			class = "err"
		}
		ping := "--"
		if p, ok := d.PingMs.(*int64); ok && p != nil {
			ping = fmt.Sprint(*p)
		}
		fmt.Fprintf(&deps, `<div class="row"><span>%s</span><span id="pill-%s" class="pill %s">%s · <span id="ping-%s">%s</span> ms</span></div>`,
			html.EscapeString(name), name, class, html.EscapeString(d.Status), name, ping)
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>RM Club · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --brand: #1B3A6B; --accent: #E2A93B; --bg: #F6F7F9; --muted: #64748b; }
    body { background: var(--bg); color: var(--brand); font-family: system-ui, sans-serif; margin: 0; display: flex; justify-content: center; padding: 48px 16px; }
    .container { width: 100%; max-width: 960px; }
    h1 { font-size: 44px; font-weight: 900; letter-spacing: -2px; margin: 0 0 8px; }
    .subtext { color: var(--muted); font-weight: 700; margin-bottom: 28px; }
    .card { background: white; border-radius: 24px; box-shadow: 0 20px 60px -20px rgba(27,58,107,0.2); overflow: hidden; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); }
    .col { padding: 32px; border-right: 1px solid #eef1f5; }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 900; letter-spacing: 2px; color: #94a3b8; margin-bottom: 18px; }
    .big { font-size: 36px; font-weight: 900; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 7px 0; font-size: 14px; font-weight: 700; border-bottom: 1px solid #f4f6f8; }
    .pill { padding: 4px 10px; border-radius: 10px; font-size: 11px; font-weight: 900; }
    .ok { background: rgba(27,58,107,0.08); color: var(--brand); }
    .err { background: rgba(239,68,68,0.1); color: #DC2626; }
    .footer { background: #fafbfc; padding: 14px 32px; font-family: monospace; font-size: 13px; display: flex; justify-content: space-between; }
    .errors { margin-top: 24px; }
    .errors button { background: var(--brand); color: white; border: none; padding: 8px 18px; border-radius: 10px; font-weight: 900; cursor: pointer; }
    #error-list { margin-top: 12px; font-size: 13px; }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; } }
  </style>
</head>
<body>
  <div class="container">
    <h1 id="headline">` + headline + `</h1>
    <p class="subtext">Relationship manager API · live request stats and dependencies.</p>
    <div class="card">
      <div class="grid">
        <div class="col">
          <div class="label">Traffic</div>
          <div class="big" id="total-req">` + fmt.Sprint(h.Traffic.TotalRequests) + `</div>
          <div class="row"><span>Successful</span><span id="success-count">` + fmt.Sprint(h.Traffic.SuccessCount) + `</span></div>
          <div class="row"><span>Failed</span><span id="failed-count">` + fmt.Sprint(h.Traffic.FailedCount) + `</span></div>
          <div class="row"><span>Success Rate</span><span id="success-rate">` + h.Traffic.SuccessRate + `%</span></div>
          <div class="row"><span>Avg Latency</span><span id="avg-time">` + fmt.Sprint(h.Traffic.AvgResponseTime) + `ms</span></div>
        </div>
        <div class="col">
          <div class="label">Runtime</div>
          <div class="big" id="uptime">` + fmt.Sprint(h.Runtime.UptimeSeconds) + `s</div>
          <div class="row"><span>Heap In Use</span><span id="mem-heap">` + fmt.Sprint(h.Runtime.Memory.HeapUsed) + ` MB</span></div>
          <div class="row"><span>Goroutines</span><span id="goroutines">` + fmt.Sprint(h.Runtime.Goroutines) + `</span></div>
          <div class="row"><span>Go</span><span>` + h.Runtime.GoVersion + `</span></div>
          <div class="row"><span>Platform</span><span>` + h.Runtime.Platform + `</span></div>
        </div>
        <div class="col">
          <div class="label">Dependencies</div>
          ` + deps.String() + `
        </div>
      </div>
      <div class="footer"><span>LAST INBOUND <b id="req-method">` + html.EscapeString(lastMethod) + `</b></span><span id="req-path">` + html.EscapeString(lastPath) + `</span></div>
    </div>
    <div class="errors">
      <button onclick="showErrors()">View Error Log</button>
      <div id="error-list"></div>
    </div>
  </div>
  <script>
    let left = 3;
    const set = (id, v) => { const el = document.getElementById(id); if (el) el.innerText = v; };
    const render = (d) => {
      set('headline', d.status === 'ok' ? 'All Systems Operational' : 'System Issues Detected');
      set('total-req', d.traffic.totalRequests);
      set('success-count', d.traffic.successCount);
      set('failed-count', d.traffic.failedCount);
      set('success-rate', d.traffic.successRate + '%');
      set('avg-time', d.traffic.avgResponseTime + 'ms');
      set('uptime', d.runtime.uptimeSeconds + 's');
      set('mem-heap', d.runtime.memory.heapUsed + ' MB');
      set('goroutines', d.runtime.goroutines);
      Object.entries(d.dependencies).forEach(([k, v]) => set('ping-' + k, v.pingMs != null ? v.pingMs : '--'));
    };
    async function tick() { if (left <= 0) return; left--; try { const r = await fetch('/health/json'); render(await r.json()); } catch (e) {} }
    async function showErrors() {
      const list = document.getElementById('error-list');
      list.innerText = 'Fetching logs...';
      try {
        const r = await fetch('/health/errors');
        const errors = await r.json();
        list.innerText = errors.length === 0 ? 'No internal errors recorded.' : errors.map(e => new Date(e.time).toLocaleString() + '  ' + e.method + ' ' + e.path + '  ' + e.status + '  ' + e.message).join('\n');
      } catch (e) { list.innerText = 'Error loading logs.'; }
    }
    render(JSON.parse(` + "`" + jsonStr + "`" + `));
    setInterval(tick, 10000);
  </script>
</body>
</html>`
}
