// Package api 브레베 계산기 HTTP 엔드포인트를 제공합니다.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/health"
	"github.com/ssugameworks/brevets/interfaces"
)

// Dependencies HTTP 핸들러가 필요로 하는 의존성입니다. Metrics는 nil일 수 있습니다
type Dependencies struct {
	Storage    interfaces.StorageRepository
	Calculator interfaces.ControlTimeCalculator
	Metrics    interfaces.MetricsRecorder
}

type Server struct {
	deps   Dependencies
	router *mux.Router
}

func NewServer(deps Dependencies) *Server {
	s := &Server{
		deps:   deps,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestLogger, recoverer)

	s.router.HandleFunc("/_calc_times", s.handleCalcTimes).Methods(http.MethodGet)
	s.router.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	s.router.HandleFunc("/display", s.handleDisplay).Methods(http.MethodGet)
	s.router.HandleFunc("/clear", s.handleClear).Methods(http.MethodPost)
	s.router.HandleFunc("/export.xlsx", s.handleExport).Methods(http.MethodGet)
	s.router.HandleFunc("/health", health.Handler).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
}

// Handler 라우터를 http.Handler로 반환합니다
func (s *Server) Handler() http.Handler {
	return s.router
}

// NewHTTPServer 타임아웃이 설정된 http.Server를 생성합니다
func NewHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}
}

func (s *Server) recordCalculation(kind string, brevetKm float64, err error) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.SendCalculationMetric(kind, brevetKm, err == nil)
	}
}
