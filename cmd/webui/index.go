package main

import (
	"net/http"

	"qa-agent/internal/app"
)

// indexPage is the single embedded form page. Presentation only; every
// answer and error it renders comes from /api/ask.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Q&amp;A System</title>
<style>
  body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
  textarea, input { width: 100%; box-sizing: border-box; margin: .25rem 0 1rem; padding: .5rem; }
  button { padding: .5rem 1.5rem; }
  #answer { white-space: pre-wrap; border-left: 4px solid #2a7; padding: .5rem 1rem; }
  #answer.error { border-left-color: #c33; }
  #meta { color: #666; font-size: .85rem; }
  .hidden { display: none; }
</style>
</head>
<body>
<h1>Question-and-Answering System</h1>
<label for="question">Your question</label>
<textarea id="question" rows="4" placeholder="e.g., What is machine learning?"></textarea>
<label for="api_key">API key (optional if configured on the server)</label>
<input id="api_key" type="password" autocomplete="off">
<button id="ask">Get Answer</button>
<div id="result" class="hidden">
  <h2>Answer</h2>
  <div id="answer"></div>
  <p id="meta"></p>
</div>
<script>
document.getElementById('ask').addEventListener('click', async () => {
  const result = document.getElementById('result');
  const answer = document.getElementById('answer');
  const meta = document.getElementById('meta');
  result.classList.remove('hidden');
  answer.classList.remove('error');
  answer.textContent = 'Processing...';
  meta.textContent = '';
  try {
    const resp = await fetch('/api/ask', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({
        question: document.getElementById('question').value,
        api_key: document.getElementById('api_key').value,
      }),
    });
    const body = await resp.json();
    if (!resp.ok) {
      answer.classList.add('error');
      const e = body.error;
      answer.textContent = typeof e === 'object' ? e.kind + ': ' + e.detail : String(e);
      return;
    }
    answer.textContent = body.answer;
    meta.textContent = 'normalized: "' + body.normalized + '" · ' +
      body.token_count + ' tokens · model: ' + body.model;
  } catch (err) {
    answer.classList.add('error');
    answer.textContent = 'request failed: ' + err;
  }
});
</script>
</body>
</html>
`

func indexHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(indexPage)); err != nil {
			deps.Log.Warn("index write failed", "err", err)
		}
	}
}
