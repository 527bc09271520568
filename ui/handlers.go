package ui

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"datalens/adapters/loader"
	"datalens/domain/core"
	"datalens/domain/diagnostic"
	"datalens/domain/table"
	"datalens/internal/analysis"
	"datalens/internal/plot"
	"datalens/internal/session"
)

// indexData drives the landing page: the upload form, the current dataset
// banner and any gate/validation message.
type indexData struct {
	Dataset *session.Dataset
	Message string
}

// sheetData drives the sheet-selection step for multi-sheet workbooks.
type sheetData struct {
	Filename string
	Sheets   []string
	Message  string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds, _ := a.store.Get(a.sessionID(r))
	a.render(w, "index.html", indexData{Dataset: ds, Message: r.URL.Query().Get("msg")})
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	sid := a.sessionID(r)

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		a.render(w, "index.html", indexData{Message: "Upload failed: file too large or malformed request."})
		return
	}

	file, header, err := r.FormFile("dataset")
	if err != nil {
		// NoFileSelected is a precondition gate, not an error: nothing is
		// analyzed until a file exists.
		a.render(w, "index.html", indexData{Message: "Choose a file to analyze first."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.render(w, "index.html", indexData{Message: "Upload failed: could not read file."})
		return
	}

	if !loader.IsSupported(header.Filename) {
		a.render(w, "index.html", indexData{Message: core.NewUnsupportedFormatError(filepath.Ext(header.Filename)).Error()})
		return
	}

	opts := table.LoadOptions{
		HasHeader: r.FormValue("has_header") == "on",
		Delimiter: table.ParseDelimiter(r.FormValue("delimiter")),
	}

	t, err := a.loader.Load(data, header.Filename, opts)
	if errors.Is(err, core.ErrSheetRequired) {
		sheets, listErr := a.loader.ListSheets(data, header.Filename)
		if listErr != nil {
			a.render(w, "index.html", indexData{Message: "Could not read workbook: " + listErr.Error()})
			return
		}
		a.store.PutPending(sid, &session.Pending{
			Filename: header.Filename,
			Data:     data,
			Options:  opts,
			Sheets:   sheets,
		})
		a.render(w, "sheets.html", sheetData{Filename: header.Filename, Sheets: sheets})
		return
	}
	if err != nil {
		a.log.Warn("upload rejected (%s): %v", header.Filename, err)
		a.render(w, "index.html", indexData{Message: "Could not load file: " + err.Error()})
		return
	}

	ds := a.store.Put(sid, header.Filename, opts, t)
	a.recordUpload(ds, sid, int64(len(data)))
	http.Redirect(w, r, "/overview", http.StatusSeeOther)
}

func (a *App) handleSheetSelection(w http.ResponseWriter, r *http.Request) {
	sid := a.sessionID(r)
	pending, ok := a.store.GetPending(sid)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	opts := pending.Options
	opts.SheetName = r.FormValue("sheet_name")
	t, err := a.loader.Load(pending.Data, pending.Filename, opts)
	if err != nil {
		a.render(w, "sheets.html", sheetData{
			Filename: pending.Filename,
			Sheets:   pending.Sheets,
			Message:  "Could not load sheet: " + err.Error(),
		})
		return
	}

	ds := a.store.Put(sid, pending.Filename, opts, t)
	a.recordUpload(ds, sid, int64(len(pending.Data)))
	http.Redirect(w, r, "/overview", http.StatusSeeOther)
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	a.store.Clear(a.sessionID(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requireDataset resolves the session's dataset or renders the precondition
// gate. Analyses have nothing to operate on until a valid Table exists.
func (a *App) requireDataset(w http.ResponseWriter, r *http.Request) (*session.Dataset, bool) {
	ds, ok := a.store.Get(a.sessionID(r))
	if !ok {
		a.render(w, "index.html", indexData{Message: "No dataset loaded yet. Upload a file to begin."})
		return nil, false
	}
	return ds, true
}

// overviewData drives the paged raw-table view.
type overviewData struct {
	Dataset *session.Dataset
	Report  diagnostic.OverviewReport
}

func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.requireDataset(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	a.render(w, "overview.html", overviewData{
		Dataset: ds,
		Report:  analysis.Overview(ds.Table, page),
	})
}

// missingnessData drives the missingness view.
type missingnessData struct {
	Dataset     *session.Dataset
	Report      diagnostic.MissingnessReport
	SummaryHTML template.HTML
}

func (a *App) handleMissingness(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.requireDataset(w, r)
	if !ok {
		return
	}
	report := analysis.Missingness(ds.Table)
	a.render(w, "missingness.html", missingnessData{
		Dataset:     ds,
		Report:      report,
		SummaryHTML: markdownHTML(missingnessMarkdown(report)),
	})
}

func (a *App) handleMissingnessPlot(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.store.Get(a.sessionID(r))
	if !ok {
		http.Error(w, "no dataset loaded", http.StatusNotFound)
		return
	}
	report := analysis.Missingness(ds.Table)
	if !report.HasCombos() {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, report.ComboMessage)
		return
	}
	if err := plot.RenderComboHTML(w, report.Combos); err != nil {
		a.log.Error("combo chart: %v", err)
	}
}

func (a *App) handleMissingnessPlotPNG(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.store.Get(a.sessionID(r))
	if !ok {
		http.Error(w, "no dataset loaded", http.StatusNotFound)
		return
	}
	report := analysis.Missingness(ds.Table)
	if !report.HasCombos() {
		http.Error(w, report.ComboMessage, http.StatusUnprocessableEntity)
		return
	}
	png, err := plot.ComboBarPNG(report.Combos)
	if err != nil {
		http.Error(w, "could not render plot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// profileData drives the column-profile view.
type profileData struct {
	Dataset     *session.Dataset
	Report      diagnostic.ProfileReport
	SummaryHTML template.HTML
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.requireDataset(w, r)
	if !ok {
		return
	}
	report := analysis.Profile(ds.Table)
	a.render(w, "profile.html", profileData{
		Dataset:     ds,
		Report:      report,
		SummaryHTML: markdownHTML(profileMarkdown(report)),
	})
}

// distributionData drives the single-column distribution view. Column choice
// is restricted to the table's actual column names via the dropdown.
type distributionData struct {
	Dataset  *session.Dataset
	Columns  []string
	Selected string
	Kind     table.Kind
	Message  string
}

func (a *App) handleDistribution(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.requireDataset(w, r)
	if !ok {
		return
	}

	columns := ds.Table.ColumnNames()
	selected := r.URL.Query().Get("column")
	if selected == "" && len(columns) > 0 {
		selected = columns[0]
	}

	data := distributionData{Dataset: ds, Columns: columns, Selected: selected}
	dist, err := analysis.Distribute(ds.Table, selected)
	if err != nil {
		data.Message = err.Error()
	} else {
		data.Kind = dist.Kind
	}
	a.render(w, "distribution.html", data)
}

// distribution resolves the selected column's distribution for the plot
// endpoints, writing the substitute message on degenerate input.
func (a *App) distribution(w http.ResponseWriter, r *http.Request) (diagnostic.Distribution, bool) {
	ds, ok := a.store.Get(a.sessionID(r))
	if !ok {
		http.Error(w, "no dataset loaded", http.StatusNotFound)
		return diagnostic.Distribution{}, false
	}
	dist, err := analysis.Distribute(ds.Table, r.URL.Query().Get("column"))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, core.ErrColumnNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return diagnostic.Distribution{}, false
	}
	return dist, true
}

func (a *App) handleDistributionPlot(w http.ResponseWriter, r *http.Request) {
	dist, ok := a.distribution(w, r)
	if !ok {
		return
	}
	var err error
	if dist.Histogram != nil {
		err = plot.RenderHistogramHTML(w, *dist.Histogram)
	} else {
		err = plot.RenderCategoryBarHTML(w, *dist.Ranking)
	}
	if err != nil {
		a.log.Error("distribution chart: %v", err)
	}
}

func (a *App) handleDistributionPlotPNG(w http.ResponseWriter, r *http.Request) {
	dist, ok := a.distribution(w, r)
	if !ok {
		return
	}
	var png []byte
	var err error
	if dist.Histogram != nil {
		png, err = plot.HistogramPNG(*dist.Histogram)
	} else {
		png, err = plot.CategoryBarPNG(*dist.Ranking)
	}
	if err != nil {
		http.Error(w, "could not render plot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// recordUpload writes the audit row when a journal is configured. Best
// effort: journal failures never block the upload.
func (a *App) recordUpload(ds *session.Dataset, sid core.SessionID, size int64) {
	if a.journal == nil {
		return
	}
	go a.journal.RecordUpload(ds, sid, size)
}
