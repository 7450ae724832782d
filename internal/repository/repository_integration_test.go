//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/persistence"
)

func setupPostgres(t *testing.T) *persistence.Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("users_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 4}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pg.Handle(), zap.NewNop()))
	return pg
}

func TestRepositories_Postgres(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()
	roles := NewRoleRepository(pg.Handle())
	users := NewUserRepository(pg.Handle())

	userRole, err := roles.GetByName(ctx, domain.RoleUser)
	require.NoError(t, err, "roles are seeded by migrations")

	again := domain.Role{Name: domain.RoleUser, Description: "ignored"}
	require.NoError(t, roles.Upsert(ctx, &again))
	assert.Equal(t, userRole.ID, again.ID)

	phone := "9999999992"
	for _, u := range []domain.User{
		{FirstName: "Ravi", LastName: "Kumar", Email: "ravi@example.com", Phone: &phone},
		{FirstName: "Anita", LastName: "Sharma", Email: "anita@example.com"},
		{FirstName: "John", LastName: "Doe", Email: "john@example.com"},
	} {
		u.PasswordHash = "$2a$04$placeholder"
		u.Role = *userRole
		require.NoError(t, users.Create(ctx, &u))
	}

	dup := domain.User{FirstName: "R", LastName: "K", Email: "ravi@example.com", PasswordHash: "x", Role: *userRole}
	assert.ErrorIs(t, users.Create(ctx, &dup), ErrDuplicate)

	created, err := users.Upsert(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, created)

	found, err := users.FindByEmailOrPhone(ctx, "nobody@example.com", phone)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", found.FirstName)
	assert.NotEmpty(t, found.PasswordHash)
	assert.Equal(t, domain.RoleUser, found.Role.Name)

	byID, err := users.GetByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	page, total, err := users.ListPage(ctx, 1, 1, domain.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "John", page[0].FirstName)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
