package roadmaps

import (
	"strings"
	"time"

	"goal-detector/internal/questionnaire"
	"goal-detector/internal/roadmaps/engine"
)

// Profile identifies who a roadmap was generated for. Both fields are optional.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Roadmap is a generated result kept for re-display and download.
type Roadmap struct {
	ID        string                  `json:"id"`
	Profile   Profile                 `json:"profile"`
	Responses questionnaire.Responses `json:"responses"`
	Payload   engine.Payload          `json:"payload"`
	CreatedAt time.Time               `json:"createdAt"`
	ExportKey string                  `json:"exportKey,omitempty"`
}

// Normalize trims the profile fields.
func (p Profile) Normalize() Profile {
	return Profile{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.ToLower(strings.TrimSpace(p.Email)),
	}
}

// OwnerKey is the value hashed into archive paths. Anonymous roadmaps share one bucket.
func (p Profile) OwnerKey() string {
	if p.Email != "" {
		return p.Email
	}
	return "anonymous"
}
