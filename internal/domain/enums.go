package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// CrisisCategory is the kind of risk signalled by crisis language.
type CrisisCategory string

const (
	CrisisNone     CrisisCategory = ""
	CrisisSuicide  CrisisCategory = "suicide"
	CrisisSelfHarm CrisisCategory = "self_harm"
	CrisisAbuse    CrisisCategory = "abuse"
	CrisisOverdose CrisisCategory = "overdose"
)

// CrisisCategories lists the categories in the order they are evaluated.
// The first matching category wins.
var CrisisCategories = []CrisisCategory{
	CrisisSuicide,
	CrisisSelfHarm,
	CrisisAbuse,
	CrisisOverdose,
}

func (c CrisisCategory) String() string { return string(c) }

func (c CrisisCategory) IsValid() bool {
	switch c {
	case CrisisSuicide, CrisisSelfHarm, CrisisAbuse, CrisisOverdose:
		return true
	}
	return false
}

// Severity grades a response validation outcome.
type Severity string

const (
	SeverityLow  Severity = "low"
	SeverityHigh Severity = "high"
)

func (s Severity) String() string { return string(s) }

// AuditKind tags an audit event.
type AuditKind string

const (
	AuditCrisisDetected   AuditKind = "crisis_detected"
	AuditEthicalViolation AuditKind = "ethical_violation_detected"
	AuditDataAccess       AuditKind = "data_access"
	AuditBiasDetected     AuditKind = "bias_detected"
)

func (k AuditKind) String() string { return string(k) }

func (k AuditKind) IsValid() bool {
	switch k {
	case AuditCrisisDetected, AuditEthicalViolation, AuditDataAccess, AuditBiasDetected:
		return true
	}
	return false
}

// ViolationType qualifies an ethical_violation_detected audit event.
type ViolationType string

const (
	ViolationOutOfScope       ViolationType = "out_of_scope_query"
	ViolationUnsafeResponse   ViolationType = "unsafe_response"
	ViolationLLMRequestFailed ViolationType = "llm_request_failed"
)

func (v ViolationType) String() string { return string(v) }

// DataAction is the action recorded by a data_access audit event.
type DataAction string

const (
	DataActionRead   DataAction = "read"
	DataActionWrite  DataAction = "write"
	DataActionDelete DataAction = "delete"
)

func (a DataAction) String() string { return string(a) }
