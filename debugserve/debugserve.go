// Package debugserve exposes the renderer's debug HTTP surface: health
// checks, render progress, request metrics, and pprof.
package debugserve

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"sync/atomic"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Progress tracks how far the render has advanced.  Safe for concurrent
// update from the render workers and read from the HTTP handlers.
type Progress struct {
	rowsDone  int64
	rowsTotal int64
}

func (p *Progress) Update(done, total int) {
	atomic.StoreInt64(&p.rowsDone, int64(done))
	atomic.StoreInt64(&p.rowsTotal, int64(total))
}

func (p *Progress) Snapshot() (done, total int64) {
	return atomic.LoadInt64(&p.rowsDone), atomic.LoadInt64(&p.rowsTotal)
}

// Server is the debug endpoint handler.
type Server struct {
	progress *Progress

	requestCount     *stats.Int64Measure
	requestCountView *view.View

	mux *http.ServeMux
}

func New(progress *Progress) *Server {
	s := &Server{progress: progress}

	s.requestCount = stats.Int64("debug_requests", "", stats.UnitDimensionless)
	s.requestCountView = &view.View{
		Name:        "debug_requests",
		Description: "Counter of debug endpoint requests",

		TagKeys: []tag.Key{tag.MustNewKey("path")},

		Measure:     s.requestCount,
		Aggregation: view.Count(),
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/healthz", s.serveHealthz)
	s.mux.HandleFunc("/readyz", s.serveHealthz)
	s.mux.HandleFunc("/statusz", s.serveStatusz)
	s.mux.HandleFunc("/debug/pprof/", pprof.Index)
	s.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	s.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return s
}

// RegisterMetrics registers the server's opencensus views.
func (s *Server) RegisterMetrics() error {
	return view.Register(s.requestCountView)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)

	glog.Infof("Served debug path=%q remoteaddr=%q", r.URL.Path, r.RemoteAddr)

	stats.RecordWithOptions(
		r.Context(),
		stats.WithTags(tag.Insert(tag.MustNewKey("path"), r.URL.Path)),
		stats.WithMeasurements(s.requestCount.M(1)))
}

func (s *Server) serveHealthz(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("200 OK"))
}

func (s *Server) serveStatusz(w http.ResponseWriter, r *http.Request) {
	done, total := s.progress.Snapshot()

	status := struct {
		RowsDone      int64 `json:"rowsDone"`
		RowsTotal     int64 `json:"rowsTotal"`
		DebugRequests int64 `json:"debugRequests"`
	}{
		RowsDone:  done,
		RowsTotal: total,
	}

	// Pull the request counter back out of the registered view, so the
	// page shows the same numbers a metrics exporter would.
	if rows, err := view.RetrieveData(s.requestCountView.Name); err == nil {
		for _, row := range rows {
			if count, ok := row.Data.(*view.CountData); ok {
				status.DebugRequests += count.Value
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		glog.Errorf("While encoding statusz response: %v", err)
	}
}
