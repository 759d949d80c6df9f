package service

import (
	"net/http"
	"sync"

	"github.com/mosaicnetworks/echo/src/echo"
	"github.com/mosaicnetworks/echo/src/telemetry"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

// Service exposes a simulation over HTTP.
type Service struct {
	sync.Mutex

	bindAddress string
	engine      *echo.Echo
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, engine *echo.Echo, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		engine:      engine,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering Echo API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/tree", s.makeHandler(s.GetTree))
	s.mux.HandleFunc("/events", s.makeHandler(s.GetEvents))
	s.mux.Handle("/metrics", telemetry.MetricsHandler())
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the router serving the API.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving Echo API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
}

// Stats is the body of /stats.
type Stats struct {
	Stats map[string]string `json:"stats"`
	Nodes map[string]string `json:"nodes"`
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Stats{
		Stats: s.engine.GetStats(),
		Nodes: s.engine.GetStates(),
	})
}

// Tree is the body of /tree.
type Tree struct {
	Initiator string            `json:"initiator"`
	Parents   map[string]string `json:"parents"`
}

// GetTree returns the parent pointers of the last run. It fails until Run has
// returned.
func (s *Service) GetTree(w http.ResponseWriter, r *http.Request) {
	result := s.engine.LastResult()
	if result == nil {
		http.Error(w, "simulation has not finished", http.StatusServiceUnavailable)
		return
	}

	tree := Tree{
		Initiator: string(result.Initiator),
		Parents:   make(map[string]string, len(result.Parents)),
	}
	for id, parent := range result.Parents {
		tree.Parents[string(id)] = string(parent)
	}

	writeJSON(w, tree)
}

// GetEvents returns the execution trace recorded so far.
func (s *Service) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.engine.Store.Events()
	if err != nil {
		s.logger.WithError(err).Error("Retrieving events")

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, events)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	jh := new(codec.JsonHandle)
	jh.Canonical = true

	codec.NewEncoder(w, jh).Encode(v)
}
