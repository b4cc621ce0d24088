//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/manish-env/shopify-order-tracking/internal/repo/postgres"
)

const (
	pgImage       = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
	pgTestConns   = 5
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleLog — пишет в лог старт и остановку контейнера.
func lifecycleLog(name string) tc.ContainerLifecycleHooks {
	short := func(c tc.Container) string {
		id := c.GetContainerID()
		if len(id) > 12 {
			return id[:12]
		}
		return id
	}
	return tc.ContainerLifecycleHooks{
		PostReadies: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				tcLogger.Printf("%s ready id=%s", name, short(c))
				return nil
			},
		},
		PreTerminates: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				tcLogger.Printf("%s terminating id=%s", name, short(c))
				return nil
			},
		},
	}
}

// PGContainer — Postgres для ограничителя: контейнер, пул и DSN.
type PGContainer struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — поднимает Postgres и открывает пул тем же кодом, что и сервис.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := tcpostgres.Run(
		ctx,
		pgImage,
		tc.WithLifecycleHooks(lifecycleLog("postgres")),
		tcpostgres.WithDatabase("tracking"),
		tcpostgres.WithUsername("tracking"),
		tcpostgres.WithPassword("tracking"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, pgTestConns)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, err
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// KafkaEnv — Redpanda для потока событий поиска.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
}

// StartKafkaTC — поднимает одноузловую Redpanda.
func StartKafkaTC(ctx context.Context) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		redpandaImage,
		tc.WithLifecycleHooks(lifecycleLog("redpanda")),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}}, stop, nil
}
