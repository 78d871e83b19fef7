// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "net/http"

// Home serves the single-page upload UI. The page is a thin client over
// the /api/session endpoints: it uploads a photo, picks a theme, submits,
// and polls the snapshot until the session settles.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homePage))
}

const homePage = `<!DOCTYPE html>
<html><head><title>FutureShot</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<script src="https://cdn.tailwindcss.com"></script></head>
<body class="bg-gray-900 min-h-screen text-white">
<div class="max-w-3xl mx-auto p-6">
<h1 class="text-4xl font-bold text-center">Future<span class="text-amber-400">Shot</span></h1>
<p class="mt-2 text-center text-gray-400">Upload a photo, pick a future, see yourself there.</p>

<div class="mt-8 grid gap-6">
<input type="file" id="photo" accept="image/*"
  class="block w-full text-sm text-gray-400 file:mr-4 file:py-2 file:px-4 file:rounded-lg file:border-0 file:bg-amber-400 file:text-gray-900 file:font-semibold">
<div id="themes" class="grid grid-cols-2 sm:grid-cols-4 gap-3"></div>
<button id="submit" class="py-3 bg-amber-400 text-gray-900 rounded-lg font-semibold disabled:opacity-40" disabled>Transform me</button>
<div id="status" class="text-center text-gray-400"></div>
<div id="result" class="hidden text-center">
<img id="resultImg" class="rounded-xl shadow-2xl mx-auto max-h-[60vh]">
<div class="mt-4 flex items-center justify-center gap-4">
<a id="shareLink" class="px-4 py-2 bg-amber-400 text-gray-900 rounded-lg font-semibold hidden" target="_blank">Open share link</a>
<img id="shareQR" class="w-28 h-28 rounded bg-white p-1 hidden">
</div>
</div>
<button id="retry" class="py-3 bg-red-500 rounded-lg font-semibold hidden">Try again</button>
</div>
</div>

<script>
const api = (path, body) => fetch('/api/session' + path, {
  method: body === undefined ? 'GET' : 'POST',
  headers: {'Content-Type': 'application/json'},
  body: body === undefined ? undefined : JSON.stringify(body),
}).then(r => r.json());

let selected = null;

async function loadThemes() {
  const themes = await fetch('/api/themes').then(r => r.json());
  const grid = document.getElementById('themes');
  for (const t of themes) {
    const card = document.createElement('button');
    card.className = 'p-3 rounded-lg border border-gray-700 text-left hover:border-amber-400';
    card.innerHTML = '<div class="font-semibold" style="color:' + t.accent + '">' + t.title +
      '</div><div class="text-xs text-gray-400">' + t.description + '</div>';
    card.onclick = async () => {
      selected = t.id;
      [...grid.children].forEach(c => c.classList.remove('border-amber-400'));
      card.classList.add('border-amber-400');
      render(await api('/theme', {theme: t.id}));
    };
    grid.appendChild(card);
  }
}

document.getElementById('photo').onchange = e => {
  const file = e.target.files[0];
  if (!file) return;
  const reader = new FileReader();
  reader.onload = async () => render(await api('/source', {image: reader.result}));
  reader.readAsDataURL(file);
};

document.getElementById('submit').onclick = async () => {
  render(await api('/submit'));
  poll();
};
document.getElementById('retry').onclick = async () => {
  render(await api('/retry'));
  poll();
};

function poll() {
  let settledPolls = 0;
  const timer = setInterval(async () => {
    const snap = await api('');
    render(snap);
    // Keep polling briefly after the result lands so the chained
    // share id has a chance to show up.
    if (snap.state !== 'processing' && (snap.state !== 'ready' || snap.share_id || ++settledPolls > 4)) {
      clearInterval(timer);
    }
  }, 1500);
}

function render(snap) {
  document.getElementById('submit').disabled = !snap.has_source || snap.state === 'processing';
  document.getElementById('status').textContent =
    snap.state === 'processing' ? 'Transforming…' : (snap.error || '');
  document.getElementById('retry').classList.toggle('hidden', snap.state !== 'failed');
  const result = document.getElementById('result');
  result.classList.toggle('hidden', snap.state !== 'ready');
  if (snap.state === 'ready') {
    document.getElementById('resultImg').src = snap.result_image;
    const link = document.getElementById('shareLink');
    const qr = document.getElementById('shareQR');
    link.classList.toggle('hidden', !snap.share_id);
    qr.classList.toggle('hidden', !snap.share_id);
    if (snap.share_id) {
      link.href = '/share/' + snap.share_id;
      qr.src = '/share/' + snap.share_id + '/qr';
    }
  }
}

loadThemes();
api('').then(render);
</script>
</body></html>`
