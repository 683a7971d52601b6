package domain

// Step is one stage of the linear checkout flow.
type Step int

const (
	StepAddress  Step = 1
	StepServices Step = 2
	StepPayment  Step = 3
	StepReview   Step = 4

	// StepMin and StepMax bound navigation.
	StepMin = StepAddress
	StepMax = StepReview
)

// String returns the human-readable step name.
func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepServices:
		return "services"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Address is a delivery address, held only for the duration of a checkout
// session and never persisted beyond order placement.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Complete reports whether every address field is populated.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" &&
		a.PostalCode != "" && a.Country != ""
}

// Service identifiers from the fixed add-on catalog.
const (
	ServiceInstallation = "installation"
	ServiceDelivery     = "delivery"
	ServiceConsultation = "consultation"
	ServiceMaintenance  = "maintenance"
)

// Urgency levels for a service request.
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// ValidService reports whether id names a catalog service.
func ValidService(id string) bool {
	switch id {
	case ServiceInstallation, ServiceDelivery, ServiceConsultation, ServiceMaintenance:
		return true
	}
	return false
}

// ValidUrgency reports whether level is a recognized urgency value.
func ValidUrgency(level string) bool {
	switch level {
	case UrgencyLow, UrgencyNormal, UrgencyHigh:
		return true
	}
	return false
}

// ServiceRequest captures the optional add-on services selected during
// checkout. An empty Services slice means no services were requested.
type ServiceRequest struct {
	Services    []string `json:"services" validate:"dive,oneof=installation delivery consultation maintenance"`
	Description string   `json:"description,omitempty"`
	Urgency     string   `json:"urgency,omitempty" validate:"omitempty,oneof=low normal high"`
}

// Requested reports whether any service is selected.
func (r ServiceRequest) Requested() bool {
	return len(r.Services) > 0
}
