package episode

// Urgency is the externally exposed triage severity. Exactly these four
// values cross the pipeline boundary; internal classifier levels are mapped
// down before they leave the classify package.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencySoon      Urgency = "soon"
	UrgencySelfCare  Urgency = "self_care"
)

// RiskLevel is a display-only styling hint derived from urgency. It is never
// fed back into classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskForUrgency maps an urgency level to its display risk level.
func RiskForUrgency(u Urgency) RiskLevel {
	switch u {
	case UrgencyEmergency:
		return RiskCritical
	case UrgencyUrgent:
		return RiskHigh
	case UrgencySoon:
		return RiskModerate
	default:
		return RiskLow
	}
}

// SafetyAssessment is the ephemeral result of one classification call.
type SafetyAssessment struct {
	Urgency          Urgency  `json:"urgency"`
	RedFlagsDetected []string `json:"red_flags_detected,omitempty"`
}

// Likelihood ranks a differential possibility.
type Likelihood string

const (
	LikelihoodHigh     Likelihood = "high"
	LikelihoodModerate Likelihood = "moderate"
	LikelihoodLow      Likelihood = "low"
)

// Rank orders likelihoods for sorting, high first.
func (l Likelihood) Rank() int {
	switch l {
	case LikelihoodHigh:
		return 0
	case LikelihoodModerate:
		return 1
	default:
		return 2
	}
}

// Upgrade bumps the likelihood one tier, capped at high.
func (l Likelihood) Upgrade() Likelihood {
	if l == LikelihoodLow {
		return LikelihoodModerate
	}
	return LikelihoodHigh
}

// DifferentialPossibility is one plausible explanation for the presented
// symptoms. Produced fresh per guidance request, never persisted, and never
// phrased as a diagnosis.
type DifferentialPossibility struct {
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Likelihood          Likelihood `json:"likelihood"`
	SupportingFactors   []string   `json:"supporting_factors,omitempty"`
	TypicalPresentation string     `json:"typical_presentation,omitempty"`
}
