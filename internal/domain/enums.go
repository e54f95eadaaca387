package domain

// Material is the kind of recyclable accepted by a smart bin.
type Material string

const (
	MaterialPlastic Material = "plastic"
	MaterialGlass   Material = "glass"
	MaterialMetal   Material = "metal"
	MaterialPaper   Material = "paper"
	MaterialOrganic Material = "organic"
)

// Materials lists every accepted material in display order.
var Materials = []Material{MaterialPlastic, MaterialGlass, MaterialMetal, MaterialPaper, MaterialOrganic}

func (m Material) String() string { return string(m) }

func (m Material) IsValid() bool {
	switch m {
	case MaterialPlastic, MaterialGlass, MaterialMetal, MaterialPaper, MaterialOrganic:
		return true
	}
	return false
}

// BinStatus is informational availability reported by bin operations.
type BinStatus string

const (
	BinStatusAvailable BinStatus = "available"
	BinStatusFull      BinStatus = "full"
	BinStatusOffline   BinStatus = "offline"
)

func (s BinStatus) String() string { return string(s) }

func (s BinStatus) IsValid() bool {
	switch s {
	case BinStatusAvailable, BinStatusFull, BinStatusOffline:
		return true
	}
	return false
}

// CollectorType describes who is applying to collect waste.
type CollectorType string

const (
	CollectorTypeIndividual   CollectorType = "individual"
	CollectorTypeCompany      CollectorType = "company"
	CollectorTypeMunicipality CollectorType = "municipality"
)

func (c CollectorType) String() string { return string(c) }

func (c CollectorType) IsValid() bool {
	switch c {
	case CollectorTypeIndividual, CollectorTypeCompany, CollectorTypeMunicipality:
		return true
	}
	return false
}

// ApplicationStatus is the state of a collector application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is accepted.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// BlocksReapply reports whether an application in this state prevents a new one
// for the same account.
func (s ApplicationStatus) BlocksReapply() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusApproved
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeAccount              EntityType = "ACCOUNT"
	EntityTypeCollectorApplication EntityType = "COLLECTOR_APPLICATION"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeAccount, EntityTypeCollectorApplication:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionApprove AuditAction = "APPROVE"
	AuditActionReject  AuditAction = "REJECT"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionApprove, AuditActionReject:
		return true
	}
	return false
}
