package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spec-kit/user-service/internal/domain"
)

const (
	adminRoleID = "6f1d1c1e-1b7a-4a55-9f0e-2d3c4b5a6f70"
	aliceID     = "1a2b3c4d-0000-4000-8000-00000000000a"
	bobID       = "1a2b3c4d-0000-4000-8000-00000000000b"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone",
		"profile_image", "dob", "role_id", "created_at", "updated_at", "password_hash",
	})
}

func roleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "created_at"})
}

func TestUserRepository_FindByEmailOrPhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email = \$1 OR phone = \$2`).
		WillReturnRows(userRows().AddRow(aliceID, "Alice", "Doe", "alice@example.com", "9999999991",
			nil, nil, adminRoleID, now, now, "$2a$10$hash"))
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE "roles"."id" = \$1`).
		WillReturnRows(roleRows().AddRow(adminRoleID, "ADMIN", "System administrator", now))

	user, err := repo.FindByEmailOrPhone(context.Background(), "alice@example.com", "9999999991")
	require.NoError(t, err)
	assert.Equal(t, aliceID, user.ID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, user.Role.Name)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "9999999991", *user.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmailOrPhone_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE phone = \$1`).
		WillReturnRows(userRows())

	_, err := repo.FindByEmailOrPhone(context.Background(), "", "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_InvalidUUID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.User{
		FirstName:    "Alice",
		LastName:     "Doe",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Role:         domain.Role{ID: adminRoleID},
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "users" ORDER BY "first_name" DESC,"id"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "first_name", "last_name", "email", "phone",
			"profile_image", "dob", "role_id", "created_at", "updated_at",
		}).
			AddRow(bobID, "Bob", "Smith", "bob@example.com", nil, nil, nil, adminRoleID, now, now).
			AddRow(aliceID, "Alice", "Doe", "alice@example.com", nil, nil, nil, adminRoleID, now, now))
	mock.ExpectQuery(`SELECT \* FROM "roles"`).
		WillReturnRows(roleRows().AddRow(adminRoleID, "ADMIN", "System administrator", now))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectCommit()

	users, total, err := repo.ListPage(context.Background(), 0, 2, domain.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[0].FirstName)
	assert.Equal(t, "Alice", users[1].FirstName)
	assert.Empty(t, users[0].PasswordHash)
	assert.Equal(t, domain.RoleAdmin, users[1].Role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
