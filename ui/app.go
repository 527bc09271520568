package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"datalens/adapters/loader"
	"datalens/domain/core"
	"datalens/internal"
	"datalens/internal/config"
	"datalens/internal/session"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

const sessionCookie = "datalens_session"

// Journal is the optional upload audit sink; nil disables journaling.
type Journal interface {
	RecordUpload(ds *session.Dataset, sessionID core.SessionID, size int64)
}

// App represents the UI application
type App struct {
	router    *chi.Mux
	store     *session.Store
	loader    *loader.Loader
	journal   Journal
	templates *template.Template
	log       *internal.Logger
	maxUpload int64
}

// NewApp creates the web application with its routes and templates wired.
func NewApp(cfg *config.Config, journal Journal) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		store:     session.NewStore(),
		loader:    loader.New(&loader.Config{MaxFileSize: cfg.Upload.MaxUploadBytes()}),
		journal:   journal,
		templates: templates,
		log:       internal.NewDefaultLogger(),
		maxUpload: cfg.Upload.MaxUploadBytes(),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(a.withSession)
}

// setupRoutes configures the request/response boundary: one route per
// diagnostic view plus the upload flow.
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Post("/sheet", a.handleSheetSelection)
	a.router.Post("/reset", a.handleReset)

	a.router.Get("/overview", a.handleOverview)
	a.router.Get("/missingness", a.handleMissingness)
	a.router.Get("/missingness/plot", a.handleMissingnessPlot)
	a.router.Get("/missingness/plot.png", a.handleMissingnessPlotPNG)
	a.router.Get("/profile", a.handleProfile)
	a.router.Get("/distribution", a.handleDistribution)
	a.router.Get("/distribution/plot", a.handleDistributionPlot)
	a.router.Get("/distribution/plot.png", a.handleDistributionPlotPNG)
}

// Router exposes the configured handler for the HTTP server.
func (a *App) Router() http.Handler {
	return a.router
}

// withSession guarantees every request carries a session cookie so that each
// visitor's upload stays isolated in its own store slot.
func (a *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(sessionCookie); err != nil {
			id := uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			r.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
		}
		next.ServeHTTP(w, r)
	})
}

// sessionID extracts the request's session identifier.
func (a *App) sessionID(r *http.Request) core.SessionID {
	if c, err := r.Cookie(sessionCookie); err == nil {
		return core.SessionID(c.Value)
	}
	return ""
}

// render executes a page template into the layout.
func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.log.Error("template %s: %v", name, err)
		http.Error(w, "internal rendering error", http.StatusInternalServerError)
	}
}
