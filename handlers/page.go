// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"html/template"
	"sync"
)

var (
	pageTmplOnce sync.Once
	pageTmpl     *template.Template
)

func pageTemplate() *template.Template {
	pageTmplOnce.Do(func() {
		pageTmpl = template.Must(template.New("dashboard").Parse(pageHTML))
	})
	return pageTmpl
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Irish Demographic Polling Datasets</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 1280px; padding: 1rem 2rem; color: #222; }
.layout { display: flex; gap: 2rem; align-items: flex-start; }
.sidebar { flex: 0 0 300px; background: #f5f5f5; border-radius: 6px; padding: 1rem; }
.sidebar fieldset { border: none; padding: 0; margin: 0 0 1rem; }
.sidebar legend { font-weight: 600; margin-bottom: .3rem; }
.sidebar label { display: block; margin: .15rem 0; }
.sidebar label.disabled { color: #999; }
.main { flex: 1; min-width: 0; }
.main svg { max-width: 100%; height: auto; }
.meta { color: #666; font-size: .9rem; }
.error { background: #fdecea; border: 1px solid #f5c2c0; padding: .5rem 1rem; border-radius: 4px; }
.well { background: #f5f5f5; border-radius: 6px; padding: 1rem; margin: 1rem 0; }
.well label { display: inline-block; margin-right: 1rem; }
</style>
</head>
<body>
<h1>Irish Demographic Polling Datasets</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/">
<div class="layout">
  <div class="sidebar">
    <fieldset>
      <legend>Date range:</legend>
      <input type="date" name="start" value="{{.Start}}" onchange="this.form.submit()">
      to
      <input type="date" name="end" value="{{.End}}" onchange="this.form.submit()">
    </fieldset>
    <fieldset>
      <legend>Dataset:</legend>
      {{range .Datasets}}<label><input type="radio" name="dataset" value="{{.Value}}"{{if .Checked}} checked{{end}} onchange="this.form.submit()"> {{.Label}}</label>
      {{end}}
    </fieldset>
    <fieldset>
      <legend>Representation:</legend>
      {{range .Representations}}<label{{if .Disabled}} class="disabled"{{end}}><input type="radio" name="representation" value="{{.Value}}"{{if .Checked}} checked{{end}}{{if .Disabled}} disabled{{end}} onchange="this.form.submit()"> {{.Label}}</label>
      {{end}}
    </fieldset>
    <fieldset>
      <legend>Demographics:</legend>
      {{range .Demographics}}<label><input type="radio" name="demographic" value="{{.Value}}"{{if .Checked}} checked{{end}} onchange="this.form.submit()"> {{.Label}}</label>
      {{end}}
    </fieldset>
    <button type="submit">Update</button>
  </div>
  <div class="main">
    <h2>{{.Title}}</h2>
    {{.Chart}}
    <p class="meta">{{.Lines}} lines, {{.Points}} observations plotted from {{.TableRows}} rows.</p>
  </div>
</div>
<div class="well">
  <input type="hidden" name="{{.SeriesShown}}" value="1">
  <strong>Select Series:</strong>
  {{range .Series}}<label><input type="checkbox" name="series" value="{{.Value}}"{{if .Checked}} checked{{end}} onchange="this.form.submit()"> {{.Label}}</label>
  {{end}}
</div>
</form>

<p>For more information, please consult our <a href="https://github.com/Irish-Dem-Polling/irish-demographic-polling-datasets.pdf"><strong>Detailed Report and Codebook (PDF)</strong></a></p>

<h3>Introduction</h3>
<p>The Irish Demographic Polling Datasets collect aggregated results on vote intentions, satisfaction with the government, and popularity of party leaders. The data are available for all respondents and various subsamples, such as age groups, gender, social class, geographic region, and district magnitude. Currently, the datasets consider over 100 polls, published between 2011 and 2022.</p>
<p>A detailed <a href="https://github.com/Irish-Dem-Polling/irish-demographic-polling-datasets.pdf">report (PDF)</a> summarises the variables and structure of the data. The document also discusses advantages and limitations of subgroup analyses by addressing three questions relating to party politics.</p>
<p>In sub-folders of this repository, we provide three datasets:</p>
<ul>
<li>The folder <a href="https://github.com/Irish-Dem-Polling/vote-intention"><code>vote-intention</code></a> contains data on first-preference vote intentions from Behaviour &amp; Attitudes and RedC polls for all respondents and various demographic and geographic subsamples.</li>
<li>The folder <a href="https://github.com/Irish-Dem-Polling/government-satisfaction"><code>government-satisfaction</code></a> contains data on satisfaction with the government from Behaviour &amp; Attitudes polls for all respondents and various demographic and geographic subsamples.</li>
<li>The folder <a href="https://github.com/Irish-Dem-Polling/party-leaders"><code>party-leaders</code></a> contains data on the approval of party leaders from Behaviour &amp; Attitudes polls for all respondents and various demographic and geographic subsamples.</li>
</ul>
<p>If available, we provide the data as weighted proportions and counts.</p>

<h3>File Formats</h3>
<p>We provide all datasets in three file formats.</p>
<ul>
<li><code>csv</code>: The <a href="https://en.wikipedia.org/wiki/Comma-separated_values">comma-separated values</a> file ensures inter-operability as it can be opened in R, Python, Stata, SPSS, and Excel.</li>
<li><code>dta</code>: This file can be used to import the datasets with correct variable encodings into <a href="https://stata.com">Stata</a>.</li>
<li><code>rds</code>: The RDS file is optimised for the <a href="https://r-project.org">R</a> statistical programming language and stores the variables in the correct data type.</li>
</ul>

<h3>Citation</h3>
<p>If you use these datasets for news reports or academic research, please cite:</p>
<p>Stefan Müller, Thomas Pluck, and Paula Montano (2023). <em>Irish Demographic Polling Datasets</em>. URL: <a href="https://github.com/Irish-Dem-Polling/datasets">https://github.com/Irish-Dem-Polling/datasets</a></p>

<h3>Acknowledgements</h3>
<p>We want to thank RedC Research and Behaviour &amp; Attitudes for continuously publishing survey reports for the public. If you use individual surveys, please cite and reference the pollsters' reports rather than this dataset. Reports provided by Behaviour &amp; Attitudes are available <a href="https://banda.ie/site-reports/">here</a>. The reports released by RedC can be accessed <a href="https://www.redcresearch.ie/latest-polls/live-polling-tracker/">here</a>.</p>
</body>
</html>
`
