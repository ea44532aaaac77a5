package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"intakeflow/internal/domain"
)

// CustomerRepository defines the contract for accepted customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	ListAll(ctx context.Context) ([]domain.Customer, error)
	// ListStale returns customers updated before cutoff that have an email or
	// phone whose verification flag is unknown, oldest first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	// UpdateVerification writes only the verified_* flags, and only while the
	// stored email and phone still equal the checked values. It reports
	// whether the row was written.
	UpdateVerification(ctx context.Context, id uuid.UUID, email, phone *string, verifiedEmail, verifiedDomain, verifiedPhone *bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerReviewRepository defines the contract for the review queue.
type CustomerReviewRepository interface {
	Create(ctx context.Context, review *domain.CustomerReview) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerReview, error)
	List(ctx context.Context, reviewType domain.ReviewType, offset, limit int) ([]domain.CustomerReview, int, error)
	Update(ctx context.Context, review *domain.CustomerReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerFileRepository defines the contract for attachments owned by a
// customer or a review record.
type CustomerFileRepository interface {
	Create(ctx context.Context, file *domain.CustomerFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerFile, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerFile, error)
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]domain.CustomerFile, error)
	// ReassignFromReview moves every file of reviewID to customerID and
	// returns the number of rows moved.
	ReassignFromReview(ctx context.Context, reviewID, customerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GeneratedFileRepository records CSV exports produced by the intake pipeline.
type GeneratedFileRepository interface {
	Create(ctx context.Context, file *domain.GeneratedFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.GeneratedFile, int, error)
}

// LoginEventRepository stores audited logins.
type LoginEventRepository interface {
	Create(ctx context.Context, event *domain.LoginEvent) error
	List(ctx context.Context, offset, limit int) ([]domain.LoginEvent, int, error)
}

// KeyLocker serializes work on the same identity keys until the enclosing
// transaction ends.
type KeyLocker interface {
	LockKeys(ctx context.Context, keys ...string) error
}

// TxRepositories are repositories bound to one transaction.
type TxRepositories struct {
	Customers CustomerRepository
	Reviews   CustomerReviewRepository
	Files     CustomerFileRepository
	Locker    KeyLocker
}

// UnitOfWork runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
