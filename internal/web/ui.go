package web

// indexPage is the single-page interface served at /. It drives the JSON API
// and listens on /ws for per-file progress.
const indexPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>PDF-Kompressor</title>
  <style>
    body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,sans-serif;max-width:880px;margin:32px auto;padding:0 16px;color:#0b0b0b;background:#fafafa}
    h1{font-size:22px;margin:0 0 8px}
    .card{background:#fff;border:1px solid #e9e9e9;border-radius:10px;padding:16px;margin:12px 0}
    .row{display:flex;gap:12px;flex-wrap:wrap;align-items:center}
    .btn{background:#0b63e5;color:#fff;border:none;padding:10px 14px;border-radius:8px;cursor:pointer}
    .btn:disabled{background:#9bb8e8}
    input[type=text]{padding:9px 10px;border:1px solid #dcdcdc;border-radius:8px;flex:1}
    select{padding:9px 10px;border:1px solid #dcdcdc;border-radius:8px}
    .muted{color:#666}
    .mono{font-family:ui-monospace,Menlo,Consolas,monospace;font-size:13px}
    .ok{color:#0a7d33}
    .fail{color:#b42318}
    ul{margin:8px 0;padding-left:18px}
  </style>
</head>
<body>
  <h1>PDF-Kompressor</h1>
  <div class="muted">Compress PDFs with Ghostscript, or in-process when it is missing.</div>

  <div class="card">
    <div class="row"><input id="input" type="text" placeholder="Input file or folder"/></div>
    <div class="row" style="margin-top:8px"><input id="output" type="text" placeholder="Output file or folder (optional)"/></div>
    <div class="row" style="margin-top:8px">
      <select id="engine">
        <option value="auto">auto</option>
        <option value="ghostscript">ghostscript</option>
        <option value="basic">basic</option>
      </select>
      <select id="quality">
        <option value="balanced">balanced</option>
        <option value="extreme">extreme</option>
        <option value="strong">strong</option>
        <option value="high">high</option>
      </select>
      <button id="go" class="btn">Compress</button>
      <span id="tool" class="muted mono"></span>
    </div>
  </div>

  <div class="card">
    <div id="summary" class="muted">No run yet.</div>
    <ul id="log" class="mono"></ul>
  </div>

  <script>
    const log = document.getElementById('log');
    const summary = document.getElementById('summary');
    const go = document.getElementById('go');

    fetch('/api/locate').then(r => r.json()).then(resp => {
      const d = resp.data || {};
      document.getElementById('tool').textContent =
        d.found ? 'Ghostscript ' + (d.version || '') + ' at ' + d.path : 'Ghostscript not found (fallback engine available)';
    });

    const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    ws.onmessage = ev => {
      const msg = JSON.parse(ev.data);
      if (msg.type === 'batch_started') {
        log.innerHTML = '';
        summary.textContent = 'Running (' + msg.data.total + ' files)…';
      } else if (msg.type === 'job_result') {
        const li = document.createElement('li');
        const d = msg.data;
        if (d.success) {
          li.className = 'ok';
          li.textContent = 'OK ' + d.source + ' -> ' + d.output + ' (' + d.original_size + ' -> ' + d.compressed_size + ', saved ' + d.saved_percent.toFixed(1) + '%)';
        } else {
          li.className = 'fail';
          li.textContent = 'FAIL ' + d.source + ': ' + d.error;
        }
        log.appendChild(li);
      } else if (msg.type === 'batch_completed') {
        summary.textContent = msg.data.summary;
        go.disabled = false;
      }
    };

    go.onclick = () => {
      go.disabled = true;
      fetch('/api/compress', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({
          input: document.getElementById('input').value,
          output: document.getElementById('output').value,
          engine: document.getElementById('engine').value,
          quality: document.getElementById('quality').value
        })
      }).then(r => r.json()).then(resp => {
        if (!resp.success) {
          summary.textContent = resp.error;
          go.disabled = false;
        }
      });
    };
  </script>
</body>
</html>
`
