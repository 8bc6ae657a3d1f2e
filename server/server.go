// Package server exposes a polygon quadtree over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/mailru/easyjson"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/quadtree"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/royalcat/polyquad/server")

type Config struct {
	Address         string
	MaxBodySize     int
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func ConfigDefault() Config {
	return Config{
		Address:         ":8080",
		MaxBodySize:     32 * 1000 * 1000, // 32MB
		ReadTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

// Server serves one tree. The tree is not safe for concurrent use, so every
// handler holds mu while it touches it.
type Server struct {
	mu   sync.Mutex
	tree *quadtree.Tree
	log  *slog.Logger

	metricPolygonsAdded   metric.Int64Counter
	metricPolygonsRemoved metric.Int64Counter
	metricQueries         metric.Int64Counter
	metricQueryHits       metric.Int64Counter
	metricRejected        metric.Int64Counter
}

func New(tree *quadtree.Tree) (*Server, error) {
	s := &Server{
		tree: tree,
		log:  slog.Default().With("component", "server"),
	}

	var err error
	if s.metricPolygonsAdded, err = meter.Int64Counter("polygons_added_total"); err != nil {
		return nil, err
	}
	if s.metricPolygonsRemoved, err = meter.Int64Counter("polygons_removed_total"); err != nil {
		return nil, err
	}
	if s.metricQueries, err = meter.Int64Counter("queries_total"); err != nil {
		return nil, err
	}
	if s.metricQueryHits, err = meter.Int64Counter("query_hits_total"); err != nil {
		return nil, err
	}
	if s.metricRejected, err = meter.Int64Counter("requests_rejected_total"); err != nil {
		return nil, err
	}
	_, err = meter.Int64ObservableGauge("polygons",
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			o.Observe(int64(s.tree.Len()))
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Handler() fasthttp.RequestHandler {
	r := router.New()
	r.GET("/polygons", s.ListPolygonsHandler)
	r.PUT("/polygons/{id}", s.PutPolygonHandler)
	r.DELETE("/polygons/{id}", s.DeletePolygonHandler)
	r.GET("/query/{x}/{y}", s.QueryHandler)
	r.POST("/query", s.BatchQueryHandler)
	r.GET("/stats", s.StatsHandler)
	r.Handle(http.MethodGet, "/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	return r.Handler
}

func Run(ctx context.Context, cfg Config, tree *quadtree.Tree) error {
	s, err := New(tree)
	if err != nil {
		return fmt.Errorf("failed to initialize server metrics: %w", err)
	}

	server := &fasthttp.Server{
		ReadTimeout:        cfg.ReadTimeout,
		MaxRequestBodySize: cfg.MaxBodySize,
		Handler:            s.Handler(),
	}

	go func() {
		s.log.Info("Server listening", "address", cfg.Address)
		if err := server.ListenAndServe(cfg.Address); err != nil && err != http.ErrServerClosed {
			stdlog.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// wait cancel
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

func (s *Server) PutPolygonHandler(ctx *fasthttp.RequestCtx) {
	id, err := strconv.ParseInt(ctx.UserValue("id").(string), 10, 64)
	if err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("bad polygon id: %w", err))
		return
	}

	var req PolygonRequest
	if err := easyjson.Unmarshal(ctx.Request.Body(), &req); err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("failed to parse request: %w", err))
		return
	}
	vs := make([]geom.Point, len(req.Points))
	for i, p := range req.Points {
		vs[i] = geom.Point{X: p[0], Y: p[1]}
	}

	s.mu.Lock()
	err = s.tree.Add(id, vs)
	s.mu.Unlock()
	if err != nil {
		s.writeError(ctx, statusOf(err), err)
		return
	}

	s.metricPolygonsAdded.Add(ctx, 1)
	ctx.Response.SetStatusCode(http.StatusNoContent)
}

func (s *Server) DeletePolygonHandler(ctx *fasthttp.RequestCtx) {
	id, err := strconv.ParseInt(ctx.UserValue("id").(string), 10, 64)
	if err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("bad polygon id: %w", err))
		return
	}

	s.mu.Lock()
	err = s.tree.Remove(id)
	s.mu.Unlock()
	if err != nil {
		s.writeError(ctx, statusOf(err), err)
		return
	}

	s.metricPolygonsRemoved.Add(ctx, 1)
	ctx.Response.SetStatusCode(http.StatusNoContent)
}

func (s *Server) ListPolygonsHandler(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	ids := s.tree.IDs()
	s.mu.Unlock()

	writeJSON(ctx, IDsResponse{IDs: ids})
}

func (s *Server) QueryHandler(ctx *fasthttp.RequestCtx) {
	s.metricQueries.Add(ctx, 1)

	x, err := strconv.ParseInt(ctx.UserValue("x").(string), 10, 32)
	if err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("bad x: %w", err))
		return
	}
	y, err := strconv.ParseInt(ctx.UserValue("y").(string), 10, 32)
	if err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("bad y: %w", err))
		return
	}

	s.mu.Lock()
	ids, err := s.tree.Query(geom.Point{X: int32(x), Y: int32(y)})
	s.mu.Unlock()
	if err != nil {
		s.writeError(ctx, statusOf(err), err)
		return
	}

	s.metricQueryHits.Add(ctx, int64(len(ids)))
	writeJSON(ctx, IDsResponse{IDs: ids})
}

var reqPointsPool = sync.Pool{
	New: func() any {
		return &[]geom.Point{}
	},
}

func (s *Server) BatchQueryHandler(ctx *fasthttp.RequestCtx) {
	points := reqPointsPool.Get().(*[]geom.Point)
	*points = (*points)[:0]
	defer reqPointsPool.Put(points)

	if err := unmarshalPointsFast(ctx.Request.Body(), points); err != nil {
		s.writeError(ctx, http.StatusBadRequest, fmt.Errorf("failed to parse request: %w", err))
		return
	}
	s.metricQueries.Add(ctx, int64(len(*points)))

	res := BatchResponse{Results: make([][]int64, 0, len(*points))}
	hits := 0

	s.mu.Lock()
	for _, p := range *points {
		ids, err := s.tree.Query(p)
		if err != nil {
			s.mu.Unlock()
			s.writeError(ctx, statusOf(err), err)
			return
		}
		hits += len(ids)
		res.Results = append(res.Results, ids)
	}
	s.mu.Unlock()

	s.metricQueryHits.Add(ctx, int64(hits))
	writeJSON(ctx, res)
}

func (s *Server) StatsHandler(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	stats := s.tree.Stats()
	s.mu.Unlock()

	writeJSON(ctx, statsResponse(stats))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, quadtree.ErrInvalidPolygon):
		return http.StatusBadRequest
	case errors.Is(err, quadtree.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quadtree.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, quadtree.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, quadtree.ErrOutOfMemory):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, code int, err error) {
	s.metricRejected.Add(ctx, 1)
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", string(ctx.Path()), "error", err)
	}
	ctx.Response.SetStatusCode(code)
	writeBody(ctx, ErrorResponse{Error: err.Error()})
}

func writeJSON(ctx *fasthttp.RequestCtx, v easyjson.Marshaler) {
	ctx.Response.SetStatusCode(http.StatusOK)
	writeBody(ctx, v)
}

func writeBody(ctx *fasthttp.RequestCtx, v easyjson.Marshaler) {
	ctx.SetContentType("application/json")
	if _, err := easyjson.MarshalToWriter(v, ctx); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to marshal response")
	}
}
