package account

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/storage/sqlconfig"
)

var accountColumns = []string{"id", "user_id", "name", "type", "currency", "balance", "is_deleted", "created_at", "updated_at"}

func newMockExec(t *testing.T) (bob.Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return bob.NewDB(db), mock
}

func TestReader_FindByID(t *testing.T) {
	exec, mock := newMockExec(t)
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+accounts").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(id.String(), userID.String(), "Chequing", int64(TypeChecking), "CAD", "125.50", false, now, now))

	got, err := NewReader(exec).FindByID(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, TypeChecking, got.Type)
	assert.True(t, decimal.RequireFromString("125.50").Equal(got.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReader_FindByID_NotFound(t *testing.T) {
	exec, mock := newMockExec(t)

	mock.ExpectQuery("SELECT .+accounts").WillReturnRows(sqlmock.NewRows(accountColumns))

	got, err := NewReader(exec).FindByID(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
}

func TestReader_List(t *testing.T) {
	exec, mock := newMockExec(t)
	userID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+accounts").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.Must(uuid.NewV4()).String(), userID.String(), "Cash", int64(TypeCash), "CAD", "0", false, now, now).
			AddRow(uuid.Must(uuid.NewV4()).String(), userID.String(), "Visa", int64(TypeCredit), "CAD", "-40.00", false, now, now))

	got, err := NewReader(exec).List(context.Background(), &AccountFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cash", got[0].Name)
	assert.Equal(t, TypeCredit, got[1].Type)
}

func TestWriter_UpdateBalance_NoRow(t *testing.T) {
	exec, mock := newMockExec(t)

	mock.ExpectExec("UPDATE .*accounts").WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewWriter(exec).UpdateBalance(context.Background(), uuid.Must(uuid.NewV4()), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
}

func TestWriter_Update(t *testing.T) {
	exec, mock := newMockExec(t)

	mock.ExpectExec("UPDATE .*accounts.+name").WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewWriter(exec).Update(context.Background(), uuid.Must(uuid.NewV4()), &AccountUpdate{
		Name: omit.From("Joint chequing"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "Checking", TypeChecking.String())
	assert.Equal(t, "Cash", TypeCash.String())
	assert.Equal(t, "Unknown", Type(9).String())
	assert.True(t, TypeInvestment.Valid())
	assert.False(t, Type(-1).Valid())
}
