// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the client table, edit forms, and a JSON API on a chi router
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/session"
)

//go:embed templates/*
var templatesFS embed.FS

// shutdownTimeout bounds how long in-flight requests get after the context ends.
const shutdownTimeout = 5 * time.Second

type Server struct {
	session   *session.Session
	notes     *notify.Center
	templates *template.Template
	log       *log.Logger
}

// NewServer parses the templates. notes must be the session's sink so flash
// messages can be looked up after a redirect.
func NewServer(s *session.Session, notes *notify.Center, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		session:   s,
		notes:     notes,
		templates: tmpl,
		log:       logger,
	}, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mw := NewMiddleware(s.log)

	mux := chi.NewRouter()
	mux.Use(mw.RequestID, mw.Log, mw.Recover)

	mux.Get("/", s.handleList)

	mux.Route("/clients", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/new", s.handleNew)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", s.handleUpdate)
			r.Get("/edit", s.handleEdit)
			r.Get("/delete", s.handleConfirmDelete)
			r.Post("/delete", s.handleDelete)
		})
	})

	mux.Route("/api", func(r chi.Router) {
		r.Get("/clients", s.handleAPIClients)
		r.Get("/options", s.handleAPIOptions)
	})

	return mux
}

// Run listens on addr and serves until ctx ends.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("starting web server", "addr", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("stopping web server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	// Render into a buffer so a template error can still become a clean 500
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("template error", "request_id", RequestIDFromContext(r.Context()), "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
