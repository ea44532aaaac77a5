package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

type customerRepo struct {
	db sqlx.ExtContext
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO customers
		(id, first_name, last_name, email, phone, job, city, country, reference, date,
		 verified_email, verified_domain, verified_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Job, c.City, c.Country,
		c.Reference, c.Date, c.VerifiedEmail, c.VerifiedDomain, c.VerifiedPhone,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isDuplicateEmail(err) {
			return domain.ErrDuplicateCustomerEmail
		}
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, r.db, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, r.db, &c,
		"SELECT * FROM customers WHERE email = $1 ORDER BY created_at LIMIT 1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByEmail: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)", email)
	if err != nil {
		return false, fmt.Errorf("customerRepo.ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (r *customerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE phone = $1)", phone)
	if err != nil {
		return false, fmt.Errorf("customerRepo.ExistsByPhone: %w", err)
	}
	return exists, nil
}

const customerSearchFilter = `($1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2
	OR email ILIKE $2 OR phone ILIKE $2 OR reference ILIKE $2)`

func (r *customerRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := sqlx.GetContext(ctx, r.db, &total,
		"SELECT COUNT(*) FROM customers WHERE "+customerSearchFilter, search, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	var customers []domain.Customer
	err = sqlx.SelectContext(ctx, r.db, &customers,
		`SELECT * FROM customers WHERE `+customerSearchFilter+`
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		search, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) ListAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := sqlx.SelectContext(ctx, r.db, &customers,
		"SELECT * FROM customers ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("customerRepo.ListAll: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := sqlx.SelectContext(ctx, r.db, &customers,
		`SELECT * FROM customers
		 WHERE updated_at < $1
		   AND ((email IS NOT NULL AND (verified_email IS NULL OR verified_domain IS NULL))
		     OR (phone IS NOT NULL AND verified_phone IS NULL))
		 ORDER BY updated_at LIMIT $2`,
		cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("customerRepo.ListStale: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4,
		 job = $5, city = $6, country = $7, reference = $8, date = $9,
		 verified_email = $10, verified_domain = $11, verified_phone = $12, updated_at = $13
		 WHERE id = $14`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Job, c.City, c.Country, c.Reference,
		c.Date, c.VerifiedEmail, c.VerifiedDomain, c.VerifiedPhone, c.UpdatedAt, c.ID)
	if err != nil {
		if isDuplicateEmail(err) {
			return domain.ErrDuplicateCustomerEmail
		}
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) UpdateVerification(
	ctx context.Context, id uuid.UUID, email, phone *string, verifiedEmail, verifiedDomain, verifiedPhone *bool,
) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET verified_email = $1, verified_domain = $2, verified_phone = $3, updated_at = $4
		 WHERE id = $5 AND email IS NOT DISTINCT FROM $6 AND phone IS NOT DISTINCT FROM $7`,
		verifiedEmail, verifiedDomain, verifiedPhone, time.Now().UTC(), id, email, phone)
	if err != nil {
		return false, fmt.Errorf("customerRepo.UpdateVerification: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
