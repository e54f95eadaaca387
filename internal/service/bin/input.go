package bin

import (
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
)

// ListInput filters a bin listing.
type ListInput struct {
	Status         *domain.BinStatus
	MunicipalityID *uuid.UUID
	Limit          int
	Offset         int
}

func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be available, full or offline"})
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
