package monitor

const indexHTML = `
<!DOCTYPE html>
<html>
<head>
    <title>Parking Lot Monitor</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; font-family: system-ui, sans-serif; background: #111827; color: #e5e7eb; }
        .app { max-width: 1100px; margin: 0 auto; padding: 16px; }
        .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px; }
        .title { font-size: 20px; font-weight: 600; }
        .badge { padding: 4px 10px; border-radius: 12px; background: #374151; font-size: 12px; }
        .grid { display: grid; grid-template-columns: 2fr 1fr; gap: 12px; }
        .panel { background: #1f2937; border-radius: 8px; padding: 12px; }
        .panel h2 { margin: 0 0 8px; font-size: 15px; }
        #stream { width: 100%; height: auto; display: block; cursor: crosshair; background: #000; border-radius: 4px; }
        .btn { padding: 6px 12px; margin: 2px; border: 0; border-radius: 4px; background: #2563eb; color: #fff; cursor: pointer; font-size: 13px; }
        .btn.secondary { background: #4b5563; }
        .btn.danger { background: #b91c1c; }
        .stat-row { display: flex; justify-content: space-between; padding: 4px 0; border-bottom: 1px solid #374151; font-size: 13px; }
        .stat-row span:last-child { font-weight: 600; }
        .free { color: #34d399; }
        .occupied { color: #f87171; }
        .booked { color: #facc15; }
        select, input[type=number] { background: #111827; color: #e5e7eb; border: 1px solid #374151; border-radius: 4px; padding: 4px 6px; }
        .hint { font-size: 12px; color: #9ca3af; margin-top: 6px; }
    </style>
</head>
<body>
    <div class="app">
        <div class="header">
            <div class="title">Parking Lot Monitor</div>
            <span class="badge" id="status-badge">Waiting for data...</span>
        </div>

        <div class="grid">
            <div class="panel">
                <h2>Live Feed</h2>
                <img id="stream" src="/stream" alt="Parking lot stream">
                <div style="margin-top:8px;">
                    <button class="btn" id="btn-begin">Add space</button>
                    <button class="btn secondary" id="btn-cancel">Cancel</button>
                    <button class="btn danger" id="btn-remove">Remove last</button>
                </div>
                <p class="hint" id="editor-hint">Click "Add space", then click the four corners of the slot on the image.</p>
            </div>

            <div class="panel">
                <h2>Occupancy</h2>
                <div class="stat-row"><span>Total</span><span id="total">--</span></div>
                <div class="stat-row"><span>Occupied</span><span class="occupied" id="occupied">--</span></div>
                <div class="stat-row"><span>Free</span><span class="free" id="free">--</span></div>
                <div class="stat-row"><span>Booked</span><span class="booked" id="booked">--</span></div>
                <div class="stat-row"><span>Frame</span><span id="frame">--</span></div>

                <h2 style="margin-top:14px;">Configuration</h2>
                <select id="config-select"></select>
                <button class="btn" id="btn-config">Load</button>

                <h2 style="margin-top:14px;">Booking</h2>
                <input type="number" id="spot-index" min="1" value="1" style="width:60px;">
                <button class="btn" id="btn-book">Book</button>
                <button class="btn secondary" id="btn-unbook">Clear</button>
                <p class="hint">Spot numbers match the labels on the overlay.</p>
            </div>
        </div>
    </div>

    <script>
        const stream = document.getElementById('stream');
        const badge = document.getElementById('status-badge');

        async function post(path, body) {
            const resp = await fetch(path, {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: body ? JSON.stringify(body) : null,
            });
            const data = await resp.json();
            if (!resp.ok) {
                badge.textContent = data.error || ('HTTP ' + resp.status);
            }
            return data;
        }

        // Map a click on the scaled <img> back to frame pixel coordinates.
        stream.addEventListener('click', (ev) => {
            const rect = stream.getBoundingClientRect();
            const x = Math.round((ev.clientX - rect.left) * stream.naturalWidth / rect.width);
            const y = Math.round((ev.clientY - rect.top) * stream.naturalHeight / rect.height);
            post('/api/spaces/click', {x: x, y: y});
        });

        document.getElementById('btn-begin').addEventListener('click', () => post('/api/spaces/begin'));
        document.getElementById('btn-cancel').addEventListener('click', () => post('/api/spaces/cancel'));
        document.getElementById('btn-remove').addEventListener('click', () => post('/api/spaces/remove-last'));

        document.getElementById('btn-config').addEventListener('click', () => {
            const name = document.getElementById('config-select').value;
            if (name) post('/api/configs/select', {name: name});
        });

        function spotIndex() {
            return parseInt(document.getElementById('spot-index').value, 10) - 1;
        }
        document.getElementById('btn-book').addEventListener('click', () => post('/api/spots/book', {index: spotIndex()}));
        document.getElementById('btn-unbook').addEventListener('click', () => post('/api/spots/clear', {index: spotIndex()}));

        async function loadConfigs() {
            const resp = await fetch('/api/configs');
            const data = await resp.json();
            const sel = document.getElementById('config-select');
            sel.innerHTML = '';
            for (const name of data.configs || []) {
                const opt = document.createElement('option');
                opt.value = name;
                opt.textContent = name;
                opt.selected = name === data.active;
                sel.appendChild(opt);
            }
        }
        loadConfigs();

        const status = new EventSource('/api/status/stream');
        status.onmessage = (ev) => {
            const data = JSON.parse(ev.data);
            const occ = data.occupancy || {};
            document.getElementById('total').textContent = occ.total ?? '--';
            document.getElementById('occupied').textContent = occ.occupied ?? '--';
            document.getElementById('free').textContent = occ.free ?? '--';
            document.getElementById('booked').textContent = (data.booked || []).map(i => i + 1).join(', ') || 'none';
            document.getElementById('frame').textContent = data.frame_number ?? '--';
            badge.textContent = data.editor && data.editor.active
                ? 'Placing point ' + ((data.editor.pending_points || []).length + 1) + ' of 4'
                : 'Live';
        };
        status.onerror = () => { badge.textContent = 'Disconnected'; };
    </script>
</body>
</html>
`
