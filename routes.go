package main

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"Radiant/internal/auth"
	"Radiant/internal/calc/dashboard"
	"Radiant/internal/calc/geometry"
	"Radiant/internal/calc/heat"
	"Radiant/internal/calc/premium/batch"
	"Radiant/internal/calc/premium/importer"
	"Radiant/internal/calc/premium/sweep"
	"Radiant/internal/calc/report"
	"Radiant/internal/calc/viewfactor"
	"Radiant/internal/config"
	"Radiant/internal/live"
	"Radiant/internal/repo"
	"Radiant/internal/scenario"
)

func CORS(allowOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if allowOrigin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack passes websocket upgrades through to the underlying connection.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// HandleList wires every endpoint onto m.
func HandleList(m *mux.Router, cfg config.Config, store repo.Repository) {
	secure := cfg.Server.CertFile != "" && cfg.Server.KeyFile != ""
	authSvc := auth.NewService([]byte(cfg.TokenKey), store, secure)
	defaults := cfg.Defaults

	loginLimiter := auth.NewIPRateLimiter(rate.Limit(cfg.Limits.LoginRate), cfg.Limits.LoginBurst)
	calcLimiter := auth.NewIPRateLimiter(rate.Limit(cfg.Limits.CalcRate), cfg.Limits.CalcBurst)

	api := m.PathPrefix("/api").Subrouter()
	api.Use(calcLimiter.Middleware)

	account := api.NewRoute().Subrouter()
	account.Use(loginLimiter.Middleware)
	account.HandleFunc("/login", authSvc.Login).Methods("POST")
	account.HandleFunc("/register", authSvc.Register).Methods("POST")
	api.HandleFunc("/logout", authSvc.Logout).Methods("POST")

	viewfactorH := &viewfactor.Handler{}
	heatH := &heat.Handler{}
	geometryH := &geometry.Handler{}
	dashboardH := &dashboard.Handler{Defaults: defaults}

	api.HandleFunc("/tools/viewfactor/calc", viewfactorH.Calc).Methods("POST")
	api.HandleFunc("/tools/heat/calc", heatH.Calc).Methods("POST")
	api.HandleFunc("/tools/geometry/calc", geometryH.Calc).Methods("POST")
	api.HandleFunc("/tools/dashboard/calc", dashboardH.Calc).Methods("POST")
	api.HandleFunc("/tools/dashboard/defaults", dashboardH.GetDefaults).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authSvc.RequireUser)

	batchH := &batch.Handler{Defaults: defaults, MaxItems: cfg.Limits.MaxBatchItems}
	sweepH := &sweep.Handler{Defaults: defaults, MaxSteps: cfg.Limits.MaxSweepSteps}
	importerH := &importer.Handler{Defaults: defaults, MaxUploadBytes: cfg.Limits.MaxUploadBytes}
	reportH := &report.Handler{Defaults: defaults}
	scenarioH := &scenario.Handler{Repo: store, Defaults: defaults}

	secureApi.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/calc", sweepH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/csv", sweepH.CSV).Methods("POST")
	secureApi.HandleFunc("/tools/import/xlsx", importerH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/export/xlsx", importerH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/scenarios", scenarioH.List).Methods("GET")
	secureApi.HandleFunc("/scenarios", scenarioH.Create).Methods("POST")
	secureApi.HandleFunc("/scenarios/{id:[0-9]+}", scenarioH.Get).Methods("GET")
	secureApi.HandleFunc("/scenarios/{id:[0-9]+}", scenarioH.Delete).Methods("DELETE")
	secureApi.HandleFunc("/scenarios/{id:[0-9]+}/calc", scenarioH.Calc).Methods("POST")

	m.HandleFunc("/ws", live.NewServer(defaults, cfg.Server.AllowOrigin).ServeWs)
}

func NewHandler(cfg config.Config, store repo.Repository) http.Handler {
	m := mux.NewRouter()
	HandleList(m, cfg, store)
	return logRequests(CORS(cfg.Server.AllowOrigin, m))
}
