package game

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Escribaup/jogo-empresarial/internal/ledger"
)

// Store holds every running game, keyed by game id. All state lives in
// memory; a game is gone when it is deleted or the process exits.
type Store struct {
	mu    sync.RWMutex
	games map[string]*session
}

// session pairs a manager with its own lock. Quarter advances mutate the
// manager, the ledger, and the idempotency set together, so every operation
// on one game goes through this lock.
type session struct {
	mu          sync.Mutex
	manager     *Manager
	idempotency map[string]struct{}
}

func NewStore() *Store {
	return &Store{games: make(map[string]*session)}
}

// Create starts a new game and returns its id. seed == 0 means a
// time-seeded economy; any other value makes the game reproducible.
func (s *Store) Create(companyName string, initialBalance float64, seed int64) (string, Snapshot) {
	var economy *Economy
	if seed != 0 {
		economy = NewSeededEconomy(seed)
	}
	m := NewManager(companyName, initialBalance, economy)

	id := uuid.NewString()
	s.mu.Lock()
	s.games[id] = &session{
		manager:     m,
		idempotency: make(map[string]struct{}),
	}
	s.mu.Unlock()

	snap := m.Snapshot()
	snap.GameID = id
	return id, snap
}

func (s *Store) get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

// PlayQuarter advances one game by a quarter. A non-empty idempotency key is
// claimed before the advance runs; replaying the same key is rejected rather
// than silently simulating a second quarter.
func (s *Store) PlayQuarter(id, idempotencyKey string, d Decisions) (QuarterResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return QuarterResult{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if idempotencyKey != "" {
		if _, seen := sess.idempotency[idempotencyKey]; seen {
			return QuarterResult{}, ErrDuplicateIdempotency
		}
	}

	result, err := sess.manager.PlayQuarter(d)
	if err != nil {
		return QuarterResult{}, err
	}
	if idempotencyKey != "" {
		sess.idempotency[idempotencyKey] = struct{}{}
	}
	return result, nil
}

func (s *Store) Snapshot(id string) (Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap := sess.manager.Snapshot()
	snap.GameID = id
	return snap, nil
}

func (s *Store) History(id string) ([]QuarterResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.History(), nil
}

func (s *Store) Transactions(id string) ([]ledger.Transaction, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.Ledger().Transactions(), nil
}

func (s *Store) Statements(id string) (ledger.Statements, error) {
	sess, err := s.get(id)
	if err != nil {
		return ledger.Statements{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.Statements(), nil
}

func (s *Store) FinancialReport(id string) (FinancialReport, error) {
	sess, err := s.get(id)
	if err != nil {
		return FinancialReport{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.FinancialReport()
}

func (s *Store) MarketReport(id string) (MarketReport, error) {
	sess, err := s.get(id)
	if err != nil {
		return MarketReport{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.MarketReport()
}

func (s *Store) SerializeState(id string) (string, error) {
	sess, err := s.get(id)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.SerializeState(), nil
}
