// Command ducksdemo wires the example ducks into a minimal host dispatch
// loop, with slog-backed logging and optional snapshot persistence when a
// Postgres DSN is configured via DEMO_POSTGRES_DSN.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reduxkit/ducks-go/duck"
	"github.com/reduxkit/ducks-go/example/counter"
	"github.com/reduxkit/ducks-go/example/todos"
	"github.com/reduxkit/ducks-go/snapshotstore"
	"github.com/reduxkit/ducks-go/snapshotstore/postgresengine"
)

const dsnEnvVar = "DEMO_POSTGRES_DSN"

const createSnapshotTableDDL = `
	CREATE TABLE IF NOT EXISTS duck_snapshots (
		namespace  TEXT PRIMARY KEY,
		version    BIGINT NOT NULL,
		state      JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`

// store is the minimal host-side dispatch loop: it owns the current state
// and funnels every action through the reducer.
type store struct {
	state  duck.State
	reduce duck.Reducer
}

func (s *store) dispatch(action duck.Action) {
	s.state = s.reduce(s.state, action)
}

// slogLogger adapts *slog.Logger to the duck and snapshot store logger
// interfaces.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func main() {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slogLogger{logger: slog.New(slogHandler)}

	runCounter(logger)
	runTodos(logger)
	runObservedDuck(logger)

	if dsn := os.Getenv(dsnEnvVar); dsn != "" {
		persistCounterState(logger, dsn)
	} else {
		logger.Info("skipping snapshot persistence", "reason", dsnEnvVar+" is not set")
	}
}

func runCounter(logger slogLogger) {
	counterStore := &store{reduce: counter.Reduce}

	counterStore.dispatch(counter.Increment(counter.ChangePayload{By: 10}))
	counterStore.dispatch(counter.Decrement(counter.ChangePayload{By: 3}))

	logger.Info("counter after increment and decrement",
		"value", counterStore.state[counter.ValueKey],
	)

	counterStore.dispatch(counter.Reset())

	logger.Info("counter after reset",
		"value", counterStore.state[counter.ValueKey],
	)
}

func runTodos(logger slogLogger) {
	todoStore := &store{reduce: todos.Reduce}

	first := todos.NewAddPayload("feed the ducks")
	todoStore.dispatch(todos.Add(first))
	todoStore.dispatch(todos.Add(todos.NewAddPayload("write more examples")))
	todoStore.dispatch(todos.Toggle(todos.TogglePayload{ID: first.ID}))

	items := todoStore.state[todos.ItemsKey].(map[string]any)
	logger.Info("todos after add and toggle", "item_count", len(items))
}

// runObservedDuck builds a duck with a logger attached, so the dispatch
// outcomes (merged, unknown action) show up in the demo output.
func runObservedDuck(logger slogLogger) {
	clicks, err := duck.BuildDuck("clicks", duck.State{"total": 0}, duck.WithLogger(logger))
	if err != nil {
		log.Fatalf("building clicks duck failed: %v", err)
	}

	track, err := duck.DefineActionFor(clicks, "TRACK", func(state duck.State, by int) duck.State {
		return duck.State{"total": state["total"].(int) + by}
	})
	if err != nil {
		log.Fatalf("defining TRACK action failed: %v", err)
	}

	reduce := clicks.Reducer()

	state := reduce(nil, track(1))
	state = reduce(state, track(2))
	state = reduce(state, duck.Action{Type: "someone/ELSE"})

	logger.Info("clicks after tracking", "total", state["total"])
}

func persistCounterState(logger slogLogger, dsn string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to postgres failed: %v", err)
	}
	defer pool.Close()

	if _, err = pool.Exec(ctx, createSnapshotTableDDL); err != nil {
		log.Fatalf("creating snapshot table failed: %v", err)
	}

	snapshotStore, err := postgresengine.NewSnapshotStoreFromPGXPool(
		pool,
		postgresengine.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("creating snapshot store failed: %v", err)
	}

	counterStore := &store{reduce: counter.Reduce}
	counterStore.dispatch(counter.Increment(counter.ChangePayload{By: 7}))

	stateJSON, err := snapshotstore.StateToJSON(counterStore.state)
	if err != nil {
		log.Fatalf("serializing counter state failed: %v", err)
	}

	version := snapshotstore.VersionUint(1)
	if previous, loadErr := snapshotStore.Load(ctx, "counter"); loadErr == nil {
		version = previous.Version + 1
	}

	snapshot, err := snapshotstore.BuildSnapshot("counter", version, stateJSON)
	if err != nil {
		log.Fatalf("building snapshot failed: %v", err)
	}

	if err = snapshotStore.Save(ctx, snapshot); err != nil {
		log.Fatalf("saving snapshot failed: %v", err)
	}

	logger.Info("counter state persisted", "namespace", "counter", "version", version)
}
