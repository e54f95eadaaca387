package ledger

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// DepositInput holds the parameters of a deposit. AccountID comes from the
// authenticated caller, never from the request body.
type DepositInput struct {
	AccountID      uuid.UUID
	BinCode        string
	Material       domain.Material
	WeightKg       float64
	IdempotencyKey *string
}

// Validate checks the fields that pricing does not. Material and weight are
// validated by the pricing table.
func (i DepositInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if strings.TrimSpace(i.BinCode) == "" {
		errs = append(errs, domain.FieldError{Field: "bin_code", Message: "required"})
	}
	if i.IdempotencyKey != nil {
		key := strings.TrimSpace(*i.IdempotencyKey)
		if key == "" {
			errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "must not be blank"})
		}
		if len(key) > MaxIdempotencyKeyLen {
			errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "max 128 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HistoryInput holds the parameters of a deposit history page.
type HistoryInput struct {
	AccountID uuid.UUID
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i HistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > MaxHistoryLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 1 and 100"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
