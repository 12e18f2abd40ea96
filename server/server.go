// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes eligibility sessions over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcodagnone/wardcheck/lookup"
	"github.com/jcodagnone/wardcheck/session"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/jcodagnone/wardcheck/submission"
	"github.com/jcodagnone/wardcheck/ward"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = time.Hour

type entry struct {
	session  *session.Session
	events   *eventQueue
	lastSeen time.Time
}

// Server holds the sessions of the connected clients.
type Server struct {
	resolver session.Resolver
	sink     submission.Sink
	boundary *ward.Boundary
	wardID   string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

// Options configures a Server.
type Options struct {
	Resolver session.Resolver
	Sink     submission.Sink

	// Boundary may be nil: checks are then Undetermined.
	Boundary *ward.Boundary
	WardID   string

	SessionTTL time.Duration
}

// NewServer creates a server. Sessions share the resolver and the sink.
func NewServer(opts Options) *Server {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	wardID := opts.WardID
	if wardID == "" && opts.Boundary != nil {
		wardID = opts.Boundary.ID
	}

	return &Server{
		resolver: opts.Resolver,
		sink:     opts.Sink,
		boundary: opts.Boundary,
		wardID:   wardID,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Router registers the routes on a new gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/ward", s.getWard)
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.POST("/sessions/:id/check", s.check)
	api.POST("/sessions/:id/manual", s.enterManual)
	api.DELETE("/sessions/:id/manual", s.exitManual)
	api.POST("/sessions/:id/click", s.click)
	api.GET("/lookup/postal/:code", s.lookupPostalCode)
	api.GET("/lookup/provinces", s.listProvinces)
	api.GET("/lookup/provinces/:name", s.lookupProvince)

	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("🗳️ Checking Ward %s, listening on %s", s.wardID, addr)

	return s.Router().Run(addr)
}

func (s *Server) newSession() (uuid.UUID, *entry) {
	events := &eventQueue{}
	e := &entry{
		session: session.New(session.Options{
			Resolver:  s.resolver,
			Presenter: events,
			Sink:      s.sink,
			Boundary:  s.boundary,
			WardID:    s.wardID,
		}),
		events:   events,
		lastSeen: s.now(),
	}

	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, old := range s.sessions {
		if s.now().Sub(old.lastSeen) > s.ttl {
			delete(s.sessions, k)
		}
	}

	s.sessions[id] = e

	return id, e
}

func (s *Server) lookupSession(ctx *gin.Context) (uuid.UUID, *entry, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})

		return uuid.Nil, nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})

		return uuid.Nil, nil, false
	}

	e.lastSeen = s.now()

	return id, e, true
}

func respond(ctx *gin.Context, status int, id uuid.UUID, e *entry, extra gin.H) {
	body := gin.H{
		"id":       id,
		"snapshot": e.session.Snapshot(),
		"events":   e.events.drain(),
	}

	for k, v := range extra {
		body[k] = v
	}

	ctx.JSON(status, body)
}

func (s *Server) getWard(ctx *gin.Context) {
	if s.boundary == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no boundaries found for ward " + s.wardID})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"ward":     s.wardID,
		"name":     s.boundary.Label(),
		"boundary": s.boundary.Polygon,
		"center":   s.boundary.Polygon.Center(),
		"bounds":   s.boundary.Polygon.Bounds(),
	})
}

func (s *Server) createSession(ctx *gin.Context) {
	id, e := s.newSession()

	respond(ctx, http.StatusCreated, id, e, nil)
}

func (s *Server) getSession(ctx *gin.Context) {
	id, e, ok := s.lookupSession(ctx)
	if !ok {
		return
	}

	respond(ctx, http.StatusOK, id, e, nil)
}

func (s *Server) check(ctx *gin.Context) {
	id, e, ok := s.lookupSession(ctx)
	if !ok {
		return
	}

	var in session.AddressInput
	if err := ctx.BindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	outcome, err := e.session.Submit(ctx.Request.Context(), in)

	var vErr *session.ValidationError

	switch {
	case err == nil:
		respond(ctx, http.StatusOK, id, e, gin.H{"outcome": outcome})
	case errors.As(err, &vErr):
		respond(ctx, http.StatusBadRequest, id, e, gin.H{"error": err.Error(), "missing": vErr.Missing})
	case errors.Is(err, session.ErrBusy):
		respond(ctx, http.StatusConflict, id, e, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrSubmission):
		// The result is final even though the record could not be sent.
		log.Printf("session %s: %v", id, err)
		respond(ctx, http.StatusBadGateway, id, e, gin.H{"error": err.Error(), "outcome": outcome})
	default:
		respond(ctx, http.StatusInternalServerError, id, e, gin.H{"error": err.Error()})
	}
}

func (s *Server) enterManual(ctx *gin.Context) {
	id, e, ok := s.lookupSession(ctx)
	if !ok {
		return
	}

	e.session.EnterManualMode()
	respond(ctx, http.StatusOK, id, e, nil)
}

func (s *Server) exitManual(ctx *gin.Context) {
	id, e, ok := s.lookupSession(ctx)
	if !ok {
		return
	}

	e.session.ExitManualMode()
	respond(ctx, http.StatusOK, id, e, nil)
}

type clickRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (s *Server) click(ctx *gin.Context) {
	id, e, ok := s.lookupSession(ctx)
	if !ok {
		return
	}

	var req clickRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if req.Lat == nil || req.Lng == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})

		return
	}

	p := spatial.Point{Lat: *req.Lat, Lng: *req.Lng}
	if err := p.Valid(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	eligibility, err := e.session.Click(p)
	if errors.Is(err, session.ErrNotManual) {
		respond(ctx, http.StatusConflict, id, e, gin.H{"error": err.Error()})

		return
	}

	respond(ctx, http.StatusOK, id, e, gin.H{"eligibility": eligibility})
}

func (s *Server) lookupPostalCode(ctx *gin.Context) {
	pc, err := lookup.ValidatePostalCode(ctx.Param("code"))
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"valid":       false,
			"error":       err.Error(),
			"suggestions": lookup.SuggestPostalCodes(ctx.Param("code")),
		})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"valid": true, "postal_code": pc})
}

func (s *Server) lookupProvince(ctx *gin.Context) {
	p, err := lookup.ValidateProvince(ctx.Param("name"))
	if err != nil {
		resp := gin.H{"valid": false, "error": err.Error()}

		var pErr *lookup.ProvinceError
		if errors.As(err, &pErr) {
			resp["suggestions"] = pErr.Suggestions
		}

		ctx.JSON(http.StatusOK, resp)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"valid": true, "province": p})
}

func (s *Server) listProvinces(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, lookup.Provinces())
}
