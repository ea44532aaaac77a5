package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
	"intakeflow/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

const lockQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

func TestUnitOfWork_LockKeysSortedAndDeduplicated(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(lockQuery)).WithArgs("email:marie@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(lockQuery)).WithArgs("phone:0612345678").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := postgres.NewUnitOfWork(db).WithinTx(context.Background(), func(ctx context.Context, repos port.TxRepositories) error {
		return repos.Locker.LockKeys(ctx, "phone:0612345678", "email:marie@gmail.com", "phone:0612345678", "")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(lockQuery)).WithArgs("email:marie@gmail.com").
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := postgres.NewUnitOfWork(db).WithinTx(context.Background(), func(ctx context.Context, repos port.TxRepositories) error {
		return repos.Locker.LockKeys(ctx, "email:marie@gmail.com")
	})

	assert.ErrorContains(t, err, "lock timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
	}{
		{"email index", &pgconn.PgError{Code: "23505", ConstraintName: "idx_customers_email_unique"}, true},
		{"unnamed constraint", &pgconn.PgError{Code: "23505"}, true},
		{"primary key", &pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"}, false},
		{"other sqlstate", &pgconn.PgError{Code: "23502", ConstraintName: "idx_customers_email_unique"}, false},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec("INSERT INTO customers").WillReturnError(tt.err)

			err := postgres.NewCustomerRepo(db).Create(context.Background(), &domain.Customer{Email: strPtr("marie@gmail.com")})

			require.Error(t, err)
			assert.Equal(t, tt.wantDuplicate, errors.Is(err, domain.ErrDuplicateCustomerEmail))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepo_Update_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE customers SET first_name").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_customers_email_unique"})

	err := postgres.NewCustomerRepo(db).Update(context.Background(), &domain.Customer{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrDuplicateCustomerEmail)
}

func TestCustomerRepo_UpdateVerification(t *testing.T) {
	id := uuid.New()
	email := "marie@gmail.com"
	yes, no := true, false
	query := `(?s)UPDATE customers SET verified_email = \$1, verified_domain = \$2, verified_phone = \$3, updated_at = \$4` +
		`.*WHERE id = \$5 AND email IS NOT DISTINCT FROM \$6 AND phone IS NOT DISTINCT FROM \$7`

	t.Run("written", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).
			WithArgs(true, false, nil, sqlmock.AnyArg(), id, email, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		written, err := postgres.NewCustomerRepo(db).UpdateVerification(context.Background(), id, &email, nil, &yes, &no, nil)

		require.NoError(t, err)
		assert.True(t, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("contact changed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		written, err := postgres.NewCustomerRepo(db).UpdateVerification(context.Background(), id, &email, nil, &yes, &yes, nil)

		require.NoError(t, err)
		assert.False(t, written)
	})
}

func TestCustomerFileRepo_ReassignFromReview(t *testing.T) {
	db, mock := newMockDB(t)
	reviewID, customerID := uuid.New(), uuid.New()
	mock.ExpectExec(`(?s)UPDATE customer_files SET customer_id = \$1, customer_review_id = NULL.*WHERE customer_review_id = \$2`).
		WithArgs(customerID, reviewID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	moved, err := postgres.NewCustomerFileRepo(db).ReassignFromReview(context.Background(), reviewID, customerID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
