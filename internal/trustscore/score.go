// Package trustscore holds the canonical trust score function. Every place
// that writes a user's trust_score goes through Compute.
package trustscore

const (
	BaseScore             = 100
	CitizenBonus          = 400
	CompletedCourseWeight = 50
	VoteWeight            = 10
	// ValidatorBonus is reserved; no validator role exists yet.
	ValidatorBonus = 0
)

// Inputs are the facts a score is derived from.
type Inputs struct {
	IsCitizen        bool
	CompletedCourses int
	VotesCast        int
}

// Breakdown itemizes a score. TotalScore is the sum of the other fields.
type Breakdown struct {
	BaseScore       int `json:"base_score"`
	CitizenBonus    int `json:"citizen_bonus"`
	EducationBonus  int `json:"education_bonus"`
	GovernanceBonus int `json:"governance_bonus"`
	ValidatorBonus  int `json:"validator_bonus"`
	TotalScore      int `json:"total_score"`
}

func Compute(in Inputs) Breakdown {
	b := Breakdown{
		BaseScore:       BaseScore,
		EducationBonus:  CompletedCourseWeight * max(in.CompletedCourses, 0),
		GovernanceBonus: VoteWeight * max(in.VotesCast, 0),
		ValidatorBonus:  ValidatorBonus,
	}
	if in.IsCitizen {
		b.CitizenBonus = CitizenBonus
	}
	b.TotalScore = b.BaseScore + b.CitizenBonus + b.EducationBonus + b.GovernanceBonus + b.ValidatorBonus
	return b
}
