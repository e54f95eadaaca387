package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bin is a municipal smart bin. Code is the unique human-facing key used by
// deposits.
type Bin struct {
	ID             uuid.UUID
	Code           string
	Location       string
	Status         BinStatus
	FillLevel      int
	MunicipalityID *uuid.UUID
	CreatedAt      time.Time
}

// BinFilter narrows a bin listing. Nil fields are not applied.
type BinFilter struct {
	Status         *BinStatus
	MunicipalityID *uuid.UUID
	Limit          int
	Offset         int
}

// BinSummary counts bins per status.
type BinSummary struct {
	Total     int
	Available int
	Full      int
	Offline   int
}
