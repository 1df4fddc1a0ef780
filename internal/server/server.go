// Package server exposes the derivation engine over HTTP. The JSON API is a
// thin presentation shell: every response is assembled from engine and form
// calls, and the handlers are the only writers of the record manager.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-shuwen/internal/config"
	"github.com/tartampluch/go-shuwen/internal/engine"
	"github.com/tartampluch/go-shuwen/internal/export"
	"github.com/tartampluch/go-shuwen/internal/form"
	"github.com/tartampluch/go-shuwen/internal/msgs"
	"github.com/tartampluch/go-shuwen/internal/oracle"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// Server wires the record manager, the calendar oracle, and the ICS builder
// behind a chi router.
type Server struct {
	// cache uses atomic.Pointer for lock-free reads. The calendar is read
	// frequently by subscribed clients but only rebuilt on commit, so this
	// beats an RWMutex on the hot path (HTTP GET).
	cache atomic.Pointer[cacheItem]

	cfg     *config.File
	manager *form.Manager
	oracle  oracle.Oracle
	clock   engine.Clock
	catalog *msgs.Catalog
	builder *export.Builder
	submit  form.Submitter
}

// New assembles a Server and primes the calendar cache from the committed
// record so subscribers never see an empty feed.
func New(cfg *config.File, manager *form.Manager, o oracle.Oracle, clock engine.Clock, catalog *msgs.Catalog) *Server {
	s := &Server{
		cfg:     cfg,
		manager: manager,
		oracle:  o,
		clock:   clock,
		catalog: catalog,
	}
	s.builder = &export.Builder{
		Clock: clock,
		FormatSummary: func(label string, age int) string {
			return catalog.GetData(config.TKeyEvtSummary, map[string]any{
				"Label": label,
				"Age":   age,
			})
		},
	}
	s.RefreshCalendar()
	return s
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get(config.RouteFacts, s.handleFacts)
	r.Get(config.RouteToday, s.handleToday)
	r.Get(config.RouteBranches, s.handleBranches)
	r.Get(config.RouteShare, s.handleShare)
	r.Post(config.RouteRecord, s.handleRecordEdit)
	r.Delete(config.RouteRecord, s.handleRecordReset)
	r.HandleFunc(config.RouteCalendar, s.handleCalendar)

	return r
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         s.cfg.BindAddr + config.AddrSeparator + s.cfg.Port,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.cfg.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		s.submit.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// effectiveTimezone prefers the record's own timezone over the server config.
func (s *Server) effectiveTimezone(rec form.BirthRecord) string {
	if rec.Timezone != "" {
		return rec.Timezone
	}
	return s.cfg.Timezone
}

// factsResponse is the full derivation payload for one record state.
type factsResponse struct {
	Record   form.BirthRecord    `json:"record"`
	Facts    engine.DerivedFacts `json:"facts"`
	Today    engine.TodayFacts   `json:"today"`
	Messages []string            `json:"messages,omitempty"`
}

// handleFacts reconciles the query string as a shareable link over the
// stored record, then derives the full fact set for the result.
func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	stored := s.manager.Committed()
	rec := form.Initialize(r.URL.Query(), &stored, form.Defaults())

	tz := s.effectiveTimezone(rec)
	today := engine.EffectiveToday(s.clock, s.cfg.BoundaryHour, tz)

	resp := factsResponse{
		Record:   rec,
		Facts:    engine.DeriveFacts(s.oracle, rec.Subject(), today),
		Today:    engine.ComposeToday(s.oracle, today),
		Messages: s.catalog.GetAll(form.Validate(rec)),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	rec := s.manager.Committed()
	today := engine.EffectiveToday(s.clock, s.cfg.BoundaryHour, s.effectiveTimezone(rec))
	s.writeJSON(w, http.StatusOK, engine.ComposeToday(s.oracle, today))
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, engine.Branches)
}

// shareResponse carries the canonical query string for the stored record.
type shareResponse struct {
	Query string `json:"query"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	include := r.URL.Query().Get(config.ParamIncludeBirth) == "1"
	values := s.manager.ShareLink(include)
	s.writeJSON(w, http.StatusOK, shareResponse{Query: values.Encode()})
}

// editOrder fixes the application order of posted field edits. Mode switches
// land before their payloads so a single request can select a time mode and
// fill it in.
var editOrder = []string{
	config.FieldGender,
	config.FieldBirthMode,
	config.FieldBirthDate,
	config.FieldTimeMode,
	config.FieldTimeBranch,
	config.FieldTimeExact,
}

// handleRecordEdit applies posted field edits, commits the result, and
// schedules a debounced calendar rebuild.
func (s *Server) handleRecordEdit(w http.ResponseWriter, r *http.Request) {
	var edits map[string]string
	if err := json.NewDecoder(r.Body).Decode(&edits); err != nil {
		http.Error(w, config.HTTPMsgBadRequest, http.StatusBadRequest)
		return
	}

	for _, field := range editOrder {
		value, ok := edits[field]
		if !ok {
			continue
		}
		s.manager.ApplyEdit(field, value)
	}

	committed := s.manager.Commit()
	s.submit.Schedule(config.DefaultSubmitDelay, s.RefreshCalendar)

	today := engine.EffectiveToday(s.clock, s.cfg.BoundaryHour, s.effectiveTimezone(committed))
	resp := factsResponse{
		Record:   committed,
		Facts:    engine.DeriveFacts(s.oracle, committed.Subject(), today),
		Today:    engine.ComposeToday(s.oracle, today),
		Messages: s.catalog.GetAll(form.Validate(committed)),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordReset(w http.ResponseWriter, r *http.Request) {
	rec := s.manager.Reset()
	s.submit.Schedule(config.DefaultSubmitDelay, s.RefreshCalendar)
	s.writeJSON(w, http.StatusOK, rec)
}

// RefreshCalendar rebuilds the ICS feed from the committed record and swaps
// it into the cache.
func (s *Server) RefreshCalendar() {
	rec := s.manager.Committed()
	today := engine.EffectiveToday(s.clock, s.cfg.BoundaryHour, s.effectiveTimezone(rec))
	facts := engine.DeriveFacts(s.oracle, rec.Subject(), today)

	data, err := s.builder.BuildCalendar(rec, facts)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		return
	}
	s.update(data)
}

// update atomically replaces the served calendar.
func (s *Server) update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
	lastMod := time.Now().UTC().Format(http.TimeFormat)

	// Atomic store ensures a concurrent reader sees either the old or the
	// new complete item, never a partial state.
	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendar serves the cached ICS content with HTTP caching support.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrEncodeResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
