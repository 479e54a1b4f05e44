// Package authz centralizes the route authorization policy. Client and
// admin route guards both consult the same decision table with different
// requirements, so the policy cannot drift between the two surfaces.
package authz

import "github.com/caribelotto/results-backend/internal/models"

// Requirement is the capability tag a route declares.
type Requirement string

const (
	Public               Requirement = "PUBLIC"
	RequireAuthenticated Requirement = "REQUIRE_AUTHENTICATED"
	RequireAdmin         Requirement = "REQUIRE_ADMIN"
)

// Action is the rendering decision for a route.
type Action string

const (
	Render               Action = "RENDER"
	RedirectToLogin      Action = "REDIRECT_TO_LOGIN"
	RedirectToClientHome Action = "REDIRECT_TO_CLIENT_HOME"
	RedirectToAdminHome  Action = "REDIRECT_TO_ADMIN_HOME"
	ShowLoadingIndicator Action = "SHOW_LOADING_INDICATOR"
)

// wildcards used by table rows; an empty matcher field matches anything.
const (
	anyState       models.SessionState = ""
	anyRole        models.Role         = ""
	anyRequirement Requirement         = ""
)

type rule struct {
	state       models.SessionState
	requirement Requirement
	role        models.Role
	action      Action
}

// table is the ordered policy; the first matching row wins. The final
// catch-all row makes Render reachable only after every exclusion above
// it has failed to match.
var table = []rule{
	{state: models.SessionLoading, requirement: anyRequirement, role: anyRole, action: ShowLoadingIndicator},
	{state: anyState, requirement: Public, role: anyRole, action: Render},
	{state: models.SessionGuest, requirement: anyRequirement, role: anyRole, action: RedirectToLogin},
	{state: models.SessionIdentified, requirement: RequireAdmin, role: models.RoleClient, action: RedirectToClientHome},
	{state: models.SessionIdentified, requirement: RequireAuthenticated, role: models.RoleAdmin, action: RedirectToAdminHome},
	{state: anyState, requirement: anyRequirement, role: anyRole, action: Render},
}

func (r rule) matches(session models.Session, requirement Requirement) bool {
	if r.state != anyState && r.state != session.State {
		return false
	}
	if r.requirement != anyRequirement && r.requirement != requirement {
		return false
	}
	if r.role != anyRole && r.role != session.Role {
		return false
	}
	return true
}

// Decide evaluates the table for a session and a route requirement.
// Every session state and requirement combination hits an explicit row;
// nothing falls through.
func Decide(session models.Session, requirement Requirement) Action {
	for _, r := range table {
		if r.matches(session, requirement) {
			return r.action
		}
	}
	// The catch-all row matches everything; this is unreachable.
	return Render
}
