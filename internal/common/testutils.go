package common

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB starts a throwaway postgres container, applies the migrations at
// source (a migrate URL relative to the calling package, e.g.
// "file://../../migrations") and returns an open handle. The container and
// schema are torn down with the test.
func TestDB(t *testing.T, source string) *sql.DB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:14.11-bookworm",
		postgres.WithDatabase("inkpost"),
		postgres.WithUsername("inkpost"),
		postgres.WithPassword("inkpost"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)))
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	mig, err := migrate.New(source, dsn)
	if err != nil {
		t.Fatalf("open migrations: %v", err)
	}
	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("apply migrations: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		mig.Drop()
		container.Terminate(ctx)
	})

	return db
}

// TestBroker starts a throwaway rabbitmq container and returns its AMQP URL.
func TestBroker(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine")
	if err != nil {
		t.Fatalf("start rabbitmq container: %v", err)
	}

	url, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("rabbitmq amqp url: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("terminate rabbitmq container: %v", err)
		}
	})

	return url
}
