package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Escribaup/jogo-empresarial/internal/advisor"
	"github.com/Escribaup/jogo-empresarial/internal/config"
	"github.com/Escribaup/jogo-empresarial/internal/game"
)

type Server struct {
	cfg     config.APIConfig
	log     *slog.Logger
	store   *game.Store
	advisor *advisor.Client
	mux     *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, store *game.Store, advisorClient *advisor.Client) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = game.NewStore()
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		store:   store,
		advisor: advisorClient,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGameState)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/quarters", s.handlePlayQuarter)
			r.Get("/quarters", s.handleQuarterHistory)
			r.Get("/ledger", s.handleLedger)
			r.Get("/statements", s.handleStatements)
			r.Get("/reports/financial", s.handleFinancialReport)
			r.Get("/reports/market", s.handleMarketReport)
			r.Post("/advice", s.handleAdvice)
		})
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CompanyName    string  `json:"company_name"`
		InitialBalance float64 `json:"initial_balance"`
		Seed           int64   `json:"seed"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.InitialBalance < 0 {
		writeError(w, http.StatusBadRequest, "initial_balance must be >= 0")
		return
	}
	if in.InitialBalance == 0 {
		in.InitialBalance = s.cfg.InitialBalance
	}

	id, snap := s.store.Create(in.CompanyName, in.InitialBalance, in.Seed)
	s.log.Info("game created", "game_id", id, "company", snap.CompanyName)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("game deleted", "game_id", id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handlePlayQuarter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in game.Decisions
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.store.PlayQuarter(id, idempotencyKey(r), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("quarter played",
		"game_id", id,
		"quarter", result.Quarter,
		"condition", result.MarketCondition,
		"profit", result.Profit,
		"balance", result.Balance,
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuarterHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.History(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quarters": history})
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.Transactions(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request) {
	statements, err := s.store.Statements(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statements)
}

func (s *Server) handleFinancialReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.FinancialReport(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMarketReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.MarketReport(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Question string `json:"question"`
	}
	// An empty body means the default question.
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.store.SerializeState(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	advice, err := s.advisor.Advise(r.Context(), state, in.Question)
	if err != nil {
		s.log.Warn("advisor request failed", "game_id", id, "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"advice": advice})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidDecisions):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrDuplicateIdempotency):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrNoQuartersPlayed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, advisor.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func idempotencyKey(r *http.Request) string {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key != "" {
		return key
	}
	return uuid.NewString()
}
