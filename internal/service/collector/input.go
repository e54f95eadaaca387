package collector

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

const (
	maxIDDocumentLen = 64
	maxAddressLen    = 500
	maxScheduleLen   = 200
	maxReasonLen     = 500
)

// ApplyInput holds the parameters of a collector application. AccountID
// comes from the authenticated caller.
type ApplyInput struct {
	AccountID     uuid.UUID
	IDDocument    string
	Address       string
	CollectorType domain.CollectorType
	Schedule      *string
}

// Validate checks all fields and collects all errors.
func (i ApplyInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}

	doc := strings.TrimSpace(i.IDDocument)
	if doc == "" {
		errs = append(errs, domain.FieldError{Field: "id_document", Message: "required"})
	} else if len(doc) > maxIDDocumentLen {
		errs = append(errs, domain.FieldError{Field: "id_document", Message: "max 64 characters"})
	}

	addr := strings.TrimSpace(i.Address)
	if addr == "" {
		errs = append(errs, domain.FieldError{Field: "address", Message: "required"})
	} else if len(addr) > maxAddressLen {
		errs = append(errs, domain.FieldError{Field: "address", Message: "max 500 characters"})
	}

	if !i.CollectorType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "collector_type", Message: "must be individual, company or municipality"})
	}

	if i.Schedule != nil && len(strings.TrimSpace(*i.Schedule)) > maxScheduleLen {
		errs = append(errs, domain.FieldError{Field: "schedule", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DecideInput holds an admin decision on a pending application.
type DecideInput struct {
	ApplicationID uuid.UUID
	Reason        *string
}

func (i DecideInput) Validate() error {
	var errs []domain.FieldError

	if i.ApplicationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "application_id", Message: "required"})
	}
	if i.Reason != nil && len(strings.TrimSpace(*i.Reason)) > maxReasonLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters the admin application queue.
type ListInput struct {
	Status *domain.ApplicationStatus
	Limit  int
	Offset int
}

func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be pending, approved or rejected"})
	}
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 1 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
