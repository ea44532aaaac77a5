package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/normalizer"
	"intakeflow/internal/port"
)

// Validators bundles the field normalizers used by reconciliation.
type Validators struct {
	Emails         *normalizer.EmailCorrector
	Domains        port.DomainChecker
	Deliverability port.DeliverabilityChecker
	Phones         *normalizer.PhoneValidator
	PhoneIntel     port.PhoneIntelligence
	Countries      *normalizer.CountryCorrector
	Cities         *normalizer.CityNormalizer
}

// NewValidators builds the production validators: local correctors plus the
// DNS, email reputation and phone intelligence clients.
func NewValidators(cfg config.ValidationConfig) Validators {
	return Validators{
		Emails:         normalizer.NewEmailCorrector(),
		Domains:        normalizer.NewMXValidator(time.Duration(cfg.DNSTimeoutSecs) * time.Second),
		Deliverability: normalizer.NewDeliverabilityClient(cfg),
		Phones:         normalizer.NewPhoneValidator(),
		PhoneIntel:     normalizer.NewPhoneIntelligenceClient(cfg),
		Countries:      normalizer.NewCountryCorrector(),
		Cities:         normalizer.NewCityNormalizer(),
	}
}

// IngestResult tells where one candidate landed.
type IngestResult struct {
	ID          uuid.UUID          `json:"id"`
	Destination domain.Destination `json:"destination"`
	ReviewType  domain.ReviewType  `json:"review_type,omitempty"`
}

// TransferResult is the outcome of moving a review record into the customer
// table.
type TransferResult struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Merged     bool      `json:"merged"`
}

// CustomerUpdate is a partial edit. Nil fields are not part of the edit; an
// empty string clears the field.
type CustomerUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Job       *string `json:"job"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
	Reference *string `json:"reference"`
	Date      *string `json:"date"`
}

func (u CustomerUpdate) empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil &&
		u.Job == nil && u.City == nil && u.Country == nil && u.Reference == nil && u.Date == nil
}

// ReconciliationService routes extracted identities into the customer table or
// the review queue, and moves review records back out of it.
type ReconciliationService interface {
	Ingest(ctx context.Context, fields map[string]any) (*IngestResult, error)
	Transfer(ctx context.Context, reviewID uuid.UUID) (*TransferResult, error)
	CreateCustomer(ctx context.Context, input CustomerUpdate) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, update CustomerUpdate) (*domain.Customer, error)
	UpdateReview(ctx context.Context, id uuid.UUID, update CustomerUpdate) (*domain.CustomerReview, error)
	Revalidate(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type reconciliationService struct {
	uow       port.UnitOfWork
	customers port.CustomerRepository
	reviews   port.CustomerReviewRepository
	v         Validators
}

// NewReconciliationService creates a new ReconciliationService implementation.
func NewReconciliationService(
	uow port.UnitOfWork,
	customers port.CustomerRepository,
	reviews port.CustomerReviewRepository,
	v Validators,
) ReconciliationService {
	return &reconciliationService{
		uow:       uow,
		customers: customers,
		reviews:   reviews,
		v:         v,
	}
}

// normalized is a candidate together with the signals that drive routing.
type normalized struct {
	candidate      *domain.CandidateRecord
	emailCorrected bool
	phoneErr       normalizer.PhoneErrorKind
}

func (s *reconciliationService) Ingest(ctx context.Context, fields map[string]any) (*IngestResult, error) {
	n := s.normalize(ctx, fields)

	// A unique violation means a writer outside the advisory lock inserted
	// the same email first. The second pass sees it as a duplicate.
	var result *IngestResult
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		result, err = s.route(ctx, n)
		if !errors.Is(err, domain.ErrDuplicateCustomerEmail) {
			break
		}
		zap.L().Warn("reconciliationService.Ingest: email taken concurrently, re-routing")
	}
	if err != nil {
		return nil, fmt.Errorf("reconciliationService.Ingest: %w", err)
	}

	zap.L().Info("reconciliationService.Ingest: routed",
		zap.String("id", result.ID.String()),
		zap.String("destination", string(result.Destination)),
		zap.String("review_type", string(result.ReviewType)))
	return result, nil
}

func (s *reconciliationService) route(ctx context.Context, n normalized) (*IngestResult, error) {
	c := n.candidate
	var result *IngestResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.TxRepositories) error {
		if err := repos.Locker.LockKeys(ctx, identityKeys(c.Email, c.Phone)...); err != nil {
			return err
		}

		reviewType, err := s.reviewType(ctx, repos.Customers, n)
		if err != nil {
			return err
		}

		if reviewType != "" {
			review := domain.ReviewFromCandidate(c, reviewType)
			if err := repos.Reviews.Create(ctx, review); err != nil {
				return err
			}
			result = &IngestResult{ID: review.ID, Destination: domain.DestinationReview, ReviewType: reviewType}
			return nil
		}

		customer := domain.CustomerFromCandidate(c)
		if err := repos.Customers.Create(ctx, customer); err != nil {
			return err
		}
		result = &IngestResult{ID: customer.ID, Destination: domain.DestinationCustomer}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reviewType applies the routing rules in order. An empty result means the
// candidate becomes a customer.
func (s *reconciliationService) reviewType(ctx context.Context, customers port.CustomerRepository, n normalized) (domain.ReviewType, error) {
	if n.phoneErr == normalizer.PhoneErrInvalidLength {
		return domain.ReviewTypeInvalidPhone, nil
	}
	if n.emailCorrected {
		return domain.ReviewTypeModified, nil
	}

	var emailDup, phoneDup bool
	var err error
	if n.candidate.Email != nil {
		if emailDup, err = customers.ExistsByEmail(ctx, *n.candidate.Email); err != nil {
			return "", err
		}
	}
	if n.candidate.Phone != nil {
		if phoneDup, err = customers.ExistsByPhone(ctx, *n.candidate.Phone); err != nil {
			return "", err
		}
	}

	switch {
	case emailDup && phoneDup:
		return domain.ReviewTypeDuplicateBoth, nil
	case emailDup:
		return domain.ReviewTypeDuplicateEmail, nil
	case phoneDup:
		return domain.ReviewTypeDuplicatePhone, nil
	}
	return "", nil
}

// normalize maps extracted fields onto a candidate. Country is corrected
// before the phone is formatted since grouping rules depend on it.
func (s *reconciliationService) normalize(ctx context.Context, fields map[string]any) normalized {
	c := &domain.CandidateRecord{
		FirstName: strip(domain.StringField(fields, domain.FieldFirstName)),
		LastName:  strip(domain.StringField(fields, domain.FieldLastName)),
		Job:       strip(domain.StringField(fields, domain.FieldProfession)),
		Reference: strip(domain.StringField(fields, domain.FieldIdentifier)),
		Date:      strip(domain.StringField(fields, domain.FieldDate)),
	}
	c.Country = s.correctCountry(strip(domain.StringField(fields, domain.FieldCountry)))
	c.City = s.normalizeCity(strip(domain.StringField(fields, domain.FieldCity)))

	n := normalized{candidate: c}

	if email := strip(domain.StringField(fields, domain.FieldEmail)); email != nil {
		corrected, changed := s.correctEmail(*email)
		c.Email = &corrected
		n.emailCorrected = changed
		c.VerifiedDomain, c.VerifiedEmail = s.verifyEmail(ctx, corrected)
	}

	if phone := strip(domain.StringField(fields, domain.FieldPhone)); phone != nil {
		c.Phone, n.phoneErr = s.formatPhone(*phone, c.Country)
		if c.Phone != nil {
			c.VerifiedPhone = s.v.PhoneIntel.Verify(ctx, *c.Phone).Valid
		}
	}
	return n
}

func (s *reconciliationService) correctEmail(email string) (string, bool) {
	res := s.v.Emails.Correct(email)
	if res.Corrected {
		zap.L().Info("reconciliationService: email domain corrected",
			zap.String("from", email), zap.String("to", res.Email))
	}
	return res.Email, res.Corrected
}

func (s *reconciliationService) verifyEmail(ctx context.Context, email string) (domainOK, deliverable *bool) {
	ok, diag := s.v.Domains.CheckDomain(ctx, email)
	zap.L().Debug("reconciliationService: domain check",
		zap.String("email", email), zap.Bool("valid", ok), zap.String("details", diag))
	d := s.v.Deliverability.IsDeliverable(ctx, email)
	return &ok, &d
}

// formatPhone formats phone for country. Numbers of the wrong length are kept
// as bare digits so a reviewer can see what was read.
func (s *reconciliationService) formatPhone(phone string, country *string) (*string, normalizer.PhoneErrorKind) {
	res := s.v.Phones.Validate(phone, country)
	switch {
	case res.Err == normalizer.PhoneErrInvalidLength:
		digits := normalizer.DigitsOnly(phone)
		return &digits, res.Err
	case res.Normalized != nil:
		return res.Normalized, res.Err
	default:
		return &phone, res.Err
	}
}

func (s *reconciliationService) correctCountry(country *string) *string {
	if country == nil {
		return nil
	}
	corrected, _ := s.v.Countries.Correct(*country)
	return &corrected
}

func (s *reconciliationService) normalizeCity(city *string) *string {
	if city == nil {
		return nil
	}
	return strip(ptr(s.v.Cities.Normalize(*city)))
}

func (s *reconciliationService) Transfer(ctx context.Context, reviewID uuid.UUID) (*TransferResult, error) {
	var result *TransferResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos port.TxRepositories) error {
		review, err := repos.Reviews.GetByID(ctx, reviewID)
		if err != nil {
			return err
		}

		var target *domain.Customer
		if review.Email != nil && *review.Email != "" {
			if err := repos.Locker.LockKeys(ctx, identityKeys(review.Email, nil)...); err != nil {
				return err
			}
			existing, err := repos.Customers.GetByEmail(ctx, *review.Email)
			switch {
			case err == nil:
				target = existing
			case errors.Is(err, domain.ErrCustomerNotFound):
			default:
				return err
			}
		}

		merged := target != nil
		if !merged {
			target = domain.PromoteReview(review)
			if err := repos.Customers.Create(ctx, target); err != nil {
				return err
			}
		}

		moved, err := repos.Files.ReassignFromReview(ctx, review.ID, target.ID)
		if err != nil {
			return err
		}
		if err := repos.Reviews.Delete(ctx, review.ID); err != nil {
			return err
		}

		zap.L().Info("reconciliationService.Transfer: done",
			zap.String("review_id", review.ID.String()),
			zap.String("customer_id", target.ID.String()),
			zap.Bool("merged", merged), zap.Int64("files_moved", moved))
		result = &TransferResult{CustomerID: target.ID, Merged: merged}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliationService.Transfer: %w", err)
	}
	return result, nil
}

func (s *reconciliationService) CreateCustomer(ctx context.Context, input CustomerUpdate) (*domain.Customer, error) {
	c := &domain.Customer{}
	s.applyUpdate(ctx, customerFields(c), input)
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("reconciliationService.CreateCustomer: %w", err)
	}
	return c, nil
}

func (s *reconciliationService) UpdateCustomer(ctx context.Context, id uuid.UUID, update CustomerUpdate) (*domain.Customer, error) {
	if update.empty() {
		return nil, domain.ErrEmptyUpdate
	}
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.applyUpdate(ctx, customerFields(c), update) {
		return c, nil
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("reconciliationService.UpdateCustomer: %w", err)
	}
	return c, nil
}

func (s *reconciliationService) UpdateReview(ctx context.Context, id uuid.UUID, update CustomerUpdate) (*domain.CustomerReview, error) {
	if update.empty() {
		return nil, domain.ErrEmptyUpdate
	}
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.applyUpdate(ctx, reviewFields(r), update) {
		return r, nil
	}
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("reconciliationService.UpdateReview: %w", err)
	}
	return r, nil
}

// Revalidate re-runs the external email and phone checks for a stored
// customer and saves the refreshed flags. When the email or phone was edited
// while the checks ran, the results are dropped and the current row returned.
func (s *reconciliationService) Revalidate(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Email != nil {
		c.VerifiedDomain, c.VerifiedEmail = s.verifyEmail(ctx, *c.Email)
	}
	if c.Phone != nil {
		c.VerifiedPhone = s.v.PhoneIntel.Verify(ctx, *c.Phone).Valid
	}

	written, err := s.customers.UpdateVerification(ctx, id, c.Email, c.Phone,
		c.VerifiedEmail, c.VerifiedDomain, c.VerifiedPhone)
	if err != nil {
		return nil, fmt.Errorf("reconciliationService.Revalidate: %w", err)
	}
	if written {
		return c, nil
	}
	zap.L().Info("reconciliationService.Revalidate: contact changed during checks, results dropped",
		zap.String("id", id.String()))
	return s.customers.GetByID(ctx, id)
}

// editable points at the mutable fields shared by customers and reviews.
type editable struct {
	firstName, lastName, email, phone, job, city, country, reference, date **string
	verifiedEmail, verifiedDomain, verifiedPhone                           **bool
}

func customerFields(c *domain.Customer) editable {
	return editable{
		firstName: &c.FirstName, lastName: &c.LastName, email: &c.Email, phone: &c.Phone,
		job: &c.Job, city: &c.City, country: &c.Country, reference: &c.Reference, date: &c.Date,
		verifiedEmail: &c.VerifiedEmail, verifiedDomain: &c.VerifiedDomain, verifiedPhone: &c.VerifiedPhone,
	}
}

func reviewFields(r *domain.CustomerReview) editable {
	return editable{
		firstName: &r.FirstName, lastName: &r.LastName, email: &r.Email, phone: &r.Phone,
		job: &r.Job, city: &r.City, country: &r.Country, reference: &r.Reference, date: &r.Date,
		verifiedEmail: &r.VerifiedEmail, verifiedDomain: &r.VerifiedDomain, verifiedPhone: &r.VerifiedPhone,
	}
}

// applyUpdate writes the fields of u whose normalized value differs from the
// stored one and re-runs the external checks only for those. It reports
// whether anything changed.
func (s *reconciliationService) applyUpdate(ctx context.Context, e editable, u CustomerUpdate) bool {
	changed := false
	set := func(dst **string, v *string, normalize func(*string) *string) bool {
		if v == nil {
			return false
		}
		next := strip(v)
		if next != nil && normalize != nil {
			next = normalize(next)
		}
		if equal(*dst, next) {
			return false
		}
		*dst = next
		changed = true
		return true
	}

	set(e.firstName, u.FirstName, nil)
	set(e.lastName, u.LastName, nil)
	set(e.job, u.Job, nil)
	set(e.reference, u.Reference, nil)
	set(e.date, u.Date, nil)
	set(e.country, u.Country, s.correctCountry)
	set(e.city, u.City, s.normalizeCity)

	emailChanged := set(e.email, u.Email, func(v *string) *string {
		corrected, _ := s.correctEmail(*v)
		return &corrected
	})
	if emailChanged {
		if *e.email == nil {
			*e.verifiedEmail, *e.verifiedDomain = nil, nil
		} else {
			*e.verifiedDomain, *e.verifiedEmail = s.verifyEmail(ctx, **e.email)
		}
	}

	phoneChanged := set(e.phone, u.Phone, func(v *string) *string {
		formatted, _ := s.formatPhone(*v, *e.country)
		return formatted
	})
	if phoneChanged {
		if *e.phone == nil {
			*e.verifiedPhone = nil
		} else {
			*e.verifiedPhone = s.v.PhoneIntel.Verify(ctx, **e.phone).Valid
		}
	}
	return changed
}

// identityKeys returns the advisory lock keys for an email and phone.
func identityKeys(email, phone *string) []string {
	var keys []string
	if email != nil && *email != "" {
		keys = append(keys, "email:"+strings.ToLower(*email))
	}
	if phone != nil && *phone != "" {
		keys = append(keys, "phone:"+normalizer.DigitsOnly(*phone))
	}
	return keys
}

// strip trims s and turns blank values into nil.
func strip(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ptr[T any](v T) *T { return &v }
