package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestOpenAndCloseDatabase(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(context.Background())) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenDatabase(dsn)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("orders"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.PingContext(ctx))

	require.NoError(t, CloseDatabase(db))

	assert.Error(t, sqlDB.PingContext(ctx))
	assert.Error(t, db.Exec("SELECT 1").Error)
}

func TestOpenDatabase_Unreachable(t *testing.T) {
	_, err := OpenDatabase("host=127.0.0.1 port=1 user=u dbname=d sslmode=disable connect_timeout=1")

	require.Error(t, err)
}
