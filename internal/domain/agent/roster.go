package agent

import "github.com/DubjamMusic/hustlecodex/internal/domain/model"

// Roster returns the fixed agent specs per team, in execution order.
// The order is load-bearing: within a team, agent N always sees the
// outputs of agents 1..N-1 as context.
func Roster() map[model.Team][]Spec {
	return map[model.Team][]Spec{
		model.TeamAlpha: {
			{Name: "Cipher", Team: model.TeamAlpha, Role: "Data Analyst and Pattern Recognizer"},
			{Name: "Specter", Team: model.TeamAlpha, Role: "Risk Assessor and Devil's Advocate"},
			{Name: "Nexus", Team: model.TeamAlpha, Role: "Strategic Synthesizer and Decision Maker"},
		},
		model.TeamOmega: {
			{Name: "Quantum", Team: model.TeamOmega, Role: "Predictive Analyst and Opportunity Hunter"},
			{Name: "Shadow", Team: model.TeamOmega, Role: "Catastrophe Auditor and Stress Tester"},
			{Name: "Apex", Team: model.TeamOmega, Role: "Aggressive Optimizer and Closer"},
		},
		model.TeamUltimate: {
			{Name: "Synergy", Team: model.TeamUltimate, Role: "Ecosystem Analyst and Cross-Functional Integrator"},
			{Name: "Sentinel", Team: model.TeamUltimate, Role: "Resilience Assessor and Ecosystem Guardian"},
			{Name: "Catalyst", Team: model.TeamUltimate, Role: "Orchestration Strategist and Vision Holder"},
		},
	}
}
