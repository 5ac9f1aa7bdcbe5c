package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/daphnetxg/homepage-audit/internal/model"
	"github.com/daphnetxg/homepage-audit/internal/platform/errs"
)

const auditTimeout = 60 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

// Transport handles the web-facing side: the landing form, the audit
// submission, and the rendered report pages.
type Transport struct {
	service    *Service
	logger     *slog.Logger
	upgradeURL string
	tmpl       *template.Template
}

// NewTransport creates a Transport backed by the given service.
// upgradeURL, when non-empty, enables the paid-audit block on the
// report page.
func NewTransport(service *Service, logger *slog.Logger, upgradeURL string) (*Transport, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"levelLabel": levelLabel,
		"truncate":   truncate,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Transport{
		service:    service,
		logger:     logger,
		upgradeURL: upgradeURL,
		tmpl:       tmpl,
	}, nil
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", t.handleHome)
	mux.HandleFunc("POST /audit", t.handleAudit)
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

func (t *Transport) handleHome(w http.ResponseWriter, _ *http.Request) {
	t.render(w, http.StatusOK, "home.html", nil)
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// reportPage is the data handed to the report template.
type reportPage struct {
	Report     *model.Report
	ReportID   string
	UpgradeURL string
}

// errorPage is the data handed to the failure template.
type errorPage struct {
	Message string
	Debug   string
}

func (t *Transport) handleAudit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		t.renderError(w, http.StatusBadRequest, "The submitted form could not be read.", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), auditTimeout)
	defer cancel()

	report, err := t.service.Audit(ctx, r.FormValue("url"))
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.render(w, http.StatusOK, "report.html", reportPage{
		Report:     report,
		ReportID:   shortID(),
		UpgradeURL: t.upgradeURL,
	})
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.Unreachable:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message, appErr.Debug())
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.", "")
}

func (t *Transport) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		t.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message, debug string) {
	t.render(w, status, "error.html", errorPage{Message: message, Debug: debug})
}

// shortID is the display identifier printed on each report.
func shortID() string {
	return uuid.New().String()[:8]
}

func levelLabel(l model.Level) string {
	switch l {
	case model.LevelHigh:
		return "High risk"
	case model.LevelMid:
		return "Moderate risk"
	case model.LevelLow:
		return "Minor"
	case model.LevelOK:
		return "Healthy"
	}
	return "Note"
}

// truncate shortens display strings to n runes; signal extraction
// keeps full text and display trims it.
func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
