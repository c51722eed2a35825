package web

import "html/template"

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardTemplateHTML))

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    .navbar-dark {
      background-color: var(--primary) !important;
    }
    .sidebar {
      background-color: var(--background);
      border-right: 1px solid var(--border);
      min-height: 100vh;
    }
    .card {
      border: 1px solid var(--border);
      background-color: var(--background);
    }
    .chart-card {
      background: var(--background);
      border-radius: 16px;
      padding: 1.5rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
      border: 1px solid var(--border);
      margin-bottom: 1.5rem;
    }
    .chart-title {
      font-size: 1.25rem;
      font-weight: 700;
      margin-bottom: 0.75rem;
    }
    .facet-strip {
      display: flex;
      gap: 1rem;
      overflow-x: auto;
    }
    .facet-strip img { max-height: 500px; }
    .legend-container {
      display: flex;
      gap: 1.5rem;
      flex-wrap: wrap;
      margin-top: 1rem;
      padding-top: 1rem;
      border-top: 2px solid var(--border);
    }
    .legend-item {
      display: flex;
      align-items: center;
      gap: 0.5rem;
    }
    .legend-color {
      width: 14px;
      height: 14px;
      border-radius: 50%;
    }
    .legend-text {
      font-size: 0.9rem;
      color: var(--secondary);
    }
    td.cell-min { background-color: #FFF59D; font-weight: 600; }
    td.cell-max { background-color: #FFCC80; font-weight: 600; }
    .preview-card img {
      width: 100%;
      height: 220px;
      object-fit: contain;
      background-color: var(--light);
    }
    .no-preview {
      height: 220px;
      display: flex;
      align-items: center;
      justify-content: center;
      background-color: var(--light);
      color: var(--secondary);
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-0">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      <span class="text-light small">{{ .DataPath }}</span>
    </div>
  </nav>

  <div class="container-fluid">
    <div class="row">
      <aside class="col-md-3 col-xl-2 sidebar p-3">
        <form method="get" action="/">
          <input type="hidden" name="applied" value="1">
          {{- range .ColorChoices }}{{ if .Checked }}
          <input type="hidden" name="color" value="{{ .Mode }}">
          {{- end }}{{ end }}
          <h6 class="text-uppercase text-muted">Filters</h6>
          <div class="mb-3">
            <label class="form-label" for="algorithm">Algorithm</label>
            <select class="form-select" id="algorithm" name="algorithm">
              {{- range .Algorithms }}
              <option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Value }}</option>
              {{- end }}
            </select>
          </div>
          <div class="mb-3">
            <label class="form-label" for="tag">Jobsite</label>
            <select class="form-select" id="tag" name="tag" multiple size="5">
              {{- range .Tags }}
              <option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Value }}</option>
              {{- end }}
            </select>
          </div>
          <div class="mb-3">
            <label class="form-label" for="subtag">Subtag</label>
            <select class="form-select" id="subtag" name="subtag" multiple size="5">
              {{- range .Subtags }}
              <option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Value }}</option>
              {{- end }}
            </select>
          </div>
          <div class="mb-3">
            <label class="form-label" for="search">Search video</label>
            <input class="form-control" id="search" name="search" value="{{ .Search }}">
          </div>
          <button class="btn btn-primary w-100" type="submit">Apply</button>
          <a class="btn btn-outline-secondary w-100 mt-2" href="/">Reset</a>
        </form>
      </aside>

      <main class="col-md-9 col-xl-10 p-4">
        <div class="chart-card">
          <div class="chart-title">Mean RMSE per Algorithm</div>
          {{- if .Summary }}
          <table class="table table-bordered table-sm" id="summaryTable">
            <thead><tr><th>Algorithm</th><th>Mean RMSE</th><th>Records</th></tr></thead>
            <tbody>
              {{- range .Summary }}
              <tr>
                <td>{{ .Algorithm }}</td>
                {{- if .Background }}
                <td style="background-color: {{ .Background }}; color: {{ .Text }}">{{ .MeanRMSE }}</td>
                {{- else }}
                <td></td>
                {{- end }}
                <td>{{ .Count }}</td>
              </tr>
              {{- end }}
            </tbody>
          </table>
          {{- else }}
          <p class="text-muted">No records match the current filters.</p>
          {{- end }}
          <a class="btn btn-sm btn-outline-primary" href="{{ .CSVURL }}">Download filtered data as CSV</a>
        </div>

        <div class="chart-card">
          <div class="chart-title">Metrics by Subtag</div>
          <div class="d-flex align-items-center mb-3">
            <span class="fw-semibold me-2">Color by</span>
            <div class="btn-group" role="group">
              {{- range .ColorChoices }}
              <a class="btn btn-sm {{ if .Checked }}btn-primary{{ else }}btn-outline-primary{{ end }}" href="{{ .URL }}">{{ .Mode }}</a>
              {{- end }}
            </div>
          </div>
          <ul class="nav nav-tabs" role="tablist">
            {{- range .Tabs }}
            <li class="nav-item" role="presentation">
              <button class="nav-link{{ if .Active }} active{{ end }}" data-bs-toggle="tab" data-bs-target="#{{ .ID }}" type="button" role="tab">{{ .Name }}</button>
            </li>
            {{- end }}
          </ul>
          <div class="tab-content pt-3">
            {{- range .Tabs }}
            <div class="tab-pane fade{{ if .Active }} show active{{ end }}" id="{{ .ID }}" role="tabpanel">
              {{- if .Facets }}
              <div class="facet-strip">
                {{- range .Facets }}
                <img src="{{ .URL }}" alt="{{ .Subtag }}" loading="lazy">
                {{- end }}
              </div>
              <h6 class="mt-4">{{ .Name }} distribution per subtag</h6>
              <img src="{{ .BoxURL }}" alt="{{ .Name }} box plot" class="img-fluid" loading="lazy">
              {{- else }}
              <p class="text-muted">No data to chart.</p>
              {{- end }}
            </div>
            {{- end }}
          </div>
          {{- if .Legend }}
          <div class="legend-container">
            {{- range .Legend }}
            <div class="legend-item">
              <span class="legend-color" style="background-color: {{ .Hex }}"></span>
              <span class="legend-text">{{ .Label }}</span>
            </div>
            {{- end }}
          </div>
          {{- end }}
        </div>

        <div class="chart-card">
          <div class="chart-title">Filtered APE Metrics <span class="badge bg-primary">{{ .RecordCount }}</span></div>
          <div class="table-responsive">
            <table class="table table-striped table-bordered table-sm" id="metricsTable">
              <thead>
                <tr>
                  <th>Algorithm</th><th>Tag</th><th>Subtag</th><th>Video</th>
                  {{- range .MetricNames }}<th>{{ . }}</th>{{ end }}
                  <th>Plot PDF</th>
                </tr>
              </thead>
              <tbody>
                {{- range .Rows }}
                <tr>
                  <td>{{ .Algorithm }}</td><td>{{ .Tag }}</td><td>{{ .Subtag }}</td><td>{{ .Video }}</td>
                  {{- range .Cells }}<td class="{{ .Class }}">{{ .Text }}</td>{{ end }}
                  <td>{{ .PlotFile }}</td>
                </tr>
                {{- end }}
              </tbody>
            </table>
          </div>
        </div>

        <div class="chart-card">
          <div class="chart-title">Plot Previews</div>
          <form class="row g-2 mb-3" method="get" action="/">
            {{- range .PreviewHidden }}
            <input type="hidden" name="{{ .Name }}" value="{{ .Value }}">
            {{- end }}
            <div class="col-auto flex-grow-1">
              <input class="form-control" name="psearch" value="{{ .PreviewSearch }}" placeholder="Search by algorithm or video">
            </div>
            <div class="col-auto"><button class="btn btn-outline-primary" type="submit">Search</button></div>
          </form>
          <div class="row row-cols-1 row-cols-md-2 row-cols-xl-3 g-3">
            {{- range .Previews }}
            <div class="col">
              <div class="card preview-card h-100">
                <div class="card-header small"><strong>{{ .Algorithm }}</strong> | {{ .Video }} | {{ .Subtag }}</div>
                {{- if .ImageURL }}
                <img src="{{ .ImageURL }}" alt="{{ .Algorithm }} {{ .Video }}" loading="lazy">
                {{- else }}
                <div class="no-preview">No Preview</div>
                {{- end }}
                <div class="card-body small">
                  RMSE: {{ if .RMSE }}{{ .RMSE }}{{ else }}n/a{{ end }} | Tag: {{ .Tag }}
                </div>
                {{- if .DownloadURL }}
                <div class="card-footer"><a class="btn btn-sm btn-outline-secondary" href="{{ .DownloadURL }}">Download image</a></div>
                {{- end }}
              </div>
            </div>
            {{- else }}
            <p class="text-muted">No previews match.</p>
            {{- end }}
          </div>
          <nav class="mt-3 d-flex align-items-center gap-3">
            {{- with .Pagination }}
            {{- if .PrevURL }}<a class="btn btn-sm btn-outline-secondary" href="{{ .PrevURL }}">Previous</a>{{ end }}
            <span class="small text-muted">Page {{ .Page }} of {{ .Pages }} ({{ .Total }} records)</span>
            {{- if .NextURL }}<a class="btn btn-sm btn-outline-secondary" href="{{ .NextURL }}">Next</a>{{ end }}
            {{- end }}
          </nav>
        </div>

        <div class="chart-card">
          <div class="chart-title">PDF Plots</div>
          {{- if .PlotsReady }}
          <a class="btn btn-primary" href="{{ .ZipURL }}">Download All PDF Plots</a>
          {{- else }}
          <div class="alert alert-warning mb-0">No PDF plots found: <code>{{ .PlotsDir }}</code> is missing or empty.</div>
          {{- end }}
        </div>

        <div class="chart-card">
          <div class="chart-title">How to run</div>
          <ol class="mb-0">
            <li>Place the results file at <code>{{ .DataPath }}</code> and the PDF plots in <code>{{ .PlotsDir }}/</code>.</li>
            <li>Generate previews: <code>cvdash convert</code> (writes PNGs to <code>{{ .PreviewsDir }}/</code>).</li>
            <li>Start the dashboard: <code>cvdash serve</code>, then reload this page after new results arrive.</li>
          </ol>
        </div>
      </main>
    </div>
  </div>
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>
</body>
</html>
`
