// Package persistence records simulation runs to SQLite so separate
// invocations can be compared offline. The engine never reads from it;
// recording is CLI-side tooling.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/engine"
)

// Store wraps a SQLite connection for run recording.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the run database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		era TEXT NOT NULL,
		seed INTEGER NOT NULL,
		population INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metrics (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS run_agents (
		run_id TEXT NOT NULL,
		agent_id INTEGER NOT NULL,
		role INTEGER NOT NULL,
		follower_count INTEGER NOT NULL,
		is_influencer INTEGER NOT NULL,
		state TEXT NOT NULL,
		PRIMARY KEY (run_id, agent_id)
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics(run_id);
	CREATE INDEX IF NOT EXISTS idx_run_agents_run ON run_agents(run_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Run is one recorded simulation run.
type Run struct {
	ID         string `db:"id" json:"id"`
	Era        string `db:"era" json:"era"`
	Seed       int64  `db:"seed" json:"seed"`
	Population int    `db:"population" json:"population"`
	EdgeCount  int    `db:"edge_count" json:"edge_count"`
	Ticks      int    `db:"ticks" json:"ticks"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}

// CreateRun registers a run row for the simulation and returns its id.
func (s *Store) CreateRun(sim *engine.Simulation, ticks int) (string, error) {
	id := uuid.NewString()
	_, err := s.conn.Exec(`INSERT INTO runs
		(id, era, seed, population, edge_count, ticks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, sim.Config.Key, sim.Seed, len(sim.Agents), len(sim.Edges), ticks,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// RecordMetrics appends one tick's metrics record to a run.
func (s *Store) RecordMetrics(runID string, m engine.Metrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	_, err = s.conn.Exec(
		"INSERT INTO metrics (run_id, tick, data) VALUES (?, ?, ?)",
		runID, m.Tick, string(data),
	)
	if err != nil {
		return fmt.Errorf("record metrics tick %d: %w", m.Tick, err)
	}
	return nil
}

// agentState is the dynamical sub-state stored per agent, separate from
// the columns used for querying.
type agentState struct {
	EmotionalState     float64             `json:"emotional_state"`
	CognitiveLoad      float64             `json:"cognitive_load"`
	RegulatoryCapacity float64             `json:"regulatory_capacity"`
	SystemCoherence    float64             `json:"system_coherence"`
	PerformanceFatigue float64             `json:"performance_fatigue"`
	Burnouts           int                 `json:"burnouts"`
	Functional         bool                `json:"functional"`
	Schismo            agents.SchismoState `json:"schismo"`
	Bind               agents.BindState    `json:"bind"`
}

// SaveAgents replaces the recorded agent rows for a run (full replace
// inside one transaction).
func (s *Store) SaveAgents(runID string, pop []*agents.Agent) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_agents WHERE run_id = ?", runID); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO run_agents
		(run_id, agent_id, role, follower_count, is_influencer, state)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range pop {
		stateJSON, _ := json.Marshal(agentState{
			EmotionalState:     a.EmotionalState,
			CognitiveLoad:      a.CognitiveLoad,
			RegulatoryCapacity: a.RegulatoryCapacity,
			SystemCoherence:    a.SystemCoherence,
			PerformanceFatigue: a.PerformanceFatigue,
			Burnouts:           a.Burnouts,
			Functional:         a.Functional,
			Schismo:            a.Schismo,
			Bind:               a.Bind,
		})

		influencer := 0
		if a.IsInfluencer {
			influencer = 1
		}

		_, err := stmt.Exec(runID, a.ID, int(a.Role), a.FollowerCount(), influencer, string(stateJSON))
		if err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run agents saved", "run", runID, "agents", len(pop))
	return nil
}

// LoadRun returns a run row and its metrics records in tick order.
func (s *Store) LoadRun(runID string) (Run, []engine.Metrics, error) {
	var run Run
	if err := s.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", runID); err != nil {
		return Run{}, nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	var rows []string
	if err := s.conn.Select(&rows,
		"SELECT data FROM metrics WHERE run_id = ? ORDER BY tick", runID); err != nil {
		return Run{}, nil, fmt.Errorf("load metrics for %s: %w", runID, err)
	}

	records := make([]engine.Metrics, 0, len(rows))
	for _, raw := range rows {
		var m engine.Metrics
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return Run{}, nil, fmt.Errorf("decode metrics for %s: %w", runID, err)
		}
		records = append(records, m)
	}
	return run, records, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	var runs []Run
	err := s.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
