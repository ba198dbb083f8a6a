package admins

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumenfoto/studio-backend/internal/users"
	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
)

func setupAdminsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  cpf TEXT,
  phone TEXT,
  address TEXT,
  system_role TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM users`).Error)
	return conn
}

func TestAssignGrantsAdminRole(t *testing.T) {
	conn := setupAdminsTestDB(t)
	owner := models.User{ID: uuid.New(), Email: "owner@lumen.example", Name: "Owner"}
	require.NoError(t, conn.Create(&owner).Error)

	svc, err := NewService(users.NewRepository(conn), "owner@lumen.example", nil)
	require.NoError(t, err)

	msg, err := svc.Assign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin claim assigned to owner@lumen.example", msg)

	var reloaded models.User
	require.NoError(t, conn.First(&reloaded, "id = ?", owner.ID).Error)
	require.NotNil(t, reloaded.SystemRole)
	assert.Equal(t, string(enums.SystemRoleAdmin), *reloaded.SystemRole)

	_, err = svc.Assign(context.Background())
	require.NoError(t, err)
}

func TestAssignUnknownAccount(t *testing.T) {
	conn := setupAdminsTestDB(t)
	svc, err := NewService(users.NewRepository(conn), "owner@lumen.example", nil)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestAssignWithoutTargetIsConfigurationError(t *testing.T) {
	svc, err := NewService(users.NewRepository(nil), "  ", nil)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConfiguration))
}

func TestAssignDatabaseFailureIsInternal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset by peer"))

	svc, err := NewService(users.NewRepository(conn), "owner@lumen.example", nil)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRoleUpdateFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).AddRow(id.String(), "owner@lumen.example", "Owner"))
	mock.ExpectExec(`UPDATE "users" SET "system_role"`).WillReturnError(errors.New("read-only transaction"))

	svc, err := NewService(users.NewRepository(conn), "owner@lumen.example", nil)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
