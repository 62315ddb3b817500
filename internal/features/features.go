// Package features holds the capability table that decides which app
// features need citizenship.
package features

type Tier string

const (
	TierPublic      Tier = "public"
	TierCitizenship Tier = "citizenship"
	TierUnknown     Tier = "unknown"
)

var capabilities = map[string]Tier{
	"send":       TierPublic,
	"receive":    TierPublic,
	"exchange":   TierPublic,
	"projects":   TierPublic,
	"foundation": TierPublic,

	"welati":     TierCitizenship,
	"perwerde":   TierCitizenship,
	"health":     TierCitizenship,
	"social":     TierCitizenship,
	"diaspora":   TierCitizenship,
	"validator":  TierCitizenship,
	"stake":      TierCitizenship,
	"governance": TierCitizenship,
	"treasury":   TierCitizenship,
}

// TierOf looks up a feature by exact name.
func TierOf(feature string) Tier {
	if t, ok := capabilities[feature]; ok {
		return t
	}
	return TierUnknown
}

// Decision is the answer to an access check.
type Decision struct {
	HasAccess           bool   `json:"has_access"`
	IsCitizen           bool   `json:"is_citizen"`
	RequiresCitizenship bool   `json:"requires_citizenship,omitempty"`
	Message             string `json:"message,omitempty"`
}

// Decide applies the capability table to a user's citizenship.
func Decide(feature string, isCitizen bool) Decision {
	switch TierOf(feature) {
	case TierPublic:
		return Decision{HasAccess: true, IsCitizen: isCitizen}
	case TierCitizenship:
		return Decision{HasAccess: isCitizen, IsCitizen: isCitizen, RequiresCitizenship: true}
	}
	return Decision{IsCitizen: isCitizen, Message: "Unknown feature"}
}
