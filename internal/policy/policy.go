// Package policy selects the per-request behavioral policy for a sender.
package policy

import "github.com/WaClaw/WaClaw/internal/tools"

// Role identifies which side of the gate a sender is on.
type Role string

const (
	// RoleBoss is the single privileged principal.
	RoleBoss Role = "boss"
	// RoleContact is any other correspondent.
	RoleContact Role = "contact"
)

// Sampling holds the model sampling parameters for one reasoning run.
type Sampling struct {
	Temperature      float64
	TopP             float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
}

// Policy bundles everything a reasoning run needs: the role, the system
// instructions, sampling parameters, and the permitted tool subset. It is
// constructed fresh per request and never mutated afterwards.
type Policy struct {
	Role         Role
	Instructions string
	Sampling     Sampling
	AllowedTools []string
}

// Select returns the policy for a sender. This is the only place role-based
// behavior diverges; everything downstream is role-agnostic given the
// returned Policy. Pure and total: no I/O, never fails.
func Select(sender, boss string) Policy {
	if sender == boss {
		return Policy{
			Role:         RoleBoss,
			Instructions: bossInstructions(boss),
			Sampling: Sampling{
				Temperature: 0.2,
				MaxTokens:   512,
			},
			AllowedTools: []string{tools.NameBroadcast},
		}
	}
	return Policy{
		Role:         RoleContact,
		Instructions: contactInstructions(sender),
		Sampling: Sampling{
			Temperature:      0.8,
			TopP:             0.9,
			MaxTokens:        512,
			PresencePenalty:  0.8,
			FrequencyPenalty: 1.0,
		},
		AllowedTools: []string{tools.NameEscalate},
	}
}
