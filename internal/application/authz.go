package application

import (
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/types"
)

// Transition names every guarded status mutation in the workflow.
type Transition string

const (
	TransitionCreateTicket     Transition = "ticket.create"
	TransitionListTickets      Transition = "ticket.list"
	TransitionAssignProvider   Transition = "ticket.assign"
	TransitionSubmitCompletion Transition = "ticket.complete"
	TransitionMemberVerify     Transition = "ticket.verify"
	TransitionCreateInvoice    Transition = "invoice.create"
	TransitionApproveInvoice   Transition = "invoice.approve"
	TransitionRejectInvoice    Transition = "invoice.reject"
	TransitionProcessPayment   Transition = "invoice.process"
)

type ScopeRule int

const (
	// ScopeNone: role membership alone decides.
	ScopeNone ScopeRule = iota
	// ScopeMembership: the actor's company membership set must include the
	// ticket's company.
	ScopeMembership
	// ScopeCreator: the actor must be the ticket's creator, and their company
	// must match the ticket's.
	ScopeCreator
)

type transitionSpec struct {
	Roles []user.Role
	Scope ScopeRule
}

// transitionTable declares, per transition, who may perform it and which
// scope rule applies. Tightening a guard is a one-line change here.
var transitionTable = map[Transition]transitionSpec{
	TransitionCreateTicket:     {Roles: []user.Role{user.RoleUser}},
	TransitionListTickets:      {Roles: []user.Role{user.RoleAdmin, user.RoleUser, user.RoleManager, user.RoleServiceProvider, user.RoleAccountant}},
	TransitionAssignProvider:   {Roles: []user.Role{user.RoleAdmin}},
	TransitionSubmitCompletion: {Roles: []user.Role{user.RoleServiceProvider}},
	TransitionMemberVerify:     {Roles: []user.Role{user.RoleUser}, Scope: ScopeCreator},
	TransitionCreateInvoice:    {Roles: []user.Role{user.RoleAdmin}},
	TransitionApproveInvoice:   {Roles: []user.Role{user.RoleManager}, Scope: ScopeMembership},
	TransitionRejectInvoice:    {Roles: []user.Role{user.RoleManager}, Scope: ScopeMembership},
	TransitionProcessPayment:   {Roles: []user.Role{user.RoleAccountant}, Scope: ScopeMembership},
}

// Authorizer decides allow/deny for a transition attempt. It reads only its
// arguments and the membership index, never ambient request state.
type Authorizer struct {
	members *MembershipIndex
}

func NewAuthorizer(members *MembershipIndex) *Authorizer {
	return &Authorizer{members: members}
}

// Authorize checks the identity against the transition's allowed roles and
// scope rule. tk may be nil for transitions without a resource scope.
func (a *Authorizer) Authorize(claims *types.Claims, t Transition, tk *ticket.Ticket) error {
	if claims == nil || claims.UserID == "" {
		return apperr.Authentication("Missing token")
	}

	spec, ok := transitionTable[t]
	if !ok {
		return apperr.Authorization("unknown transition " + string(t))
	}

	roleOK := false
	for _, r := range spec.Roles {
		if user.Role(claims.Role) == r {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return apperr.Authorization("forbidden-role")
	}

	switch spec.Scope {
	case ScopeNone:
		return nil

	case ScopeMembership:
		if tk == nil {
			return apperr.Authorization("forbidden-scope")
		}
		ok, err := a.members.Contains(claims.UserID, tk.CompanyID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Authorization("forbidden-scope")
		}
		return nil

	case ScopeCreator:
		if tk == nil {
			return apperr.Authorization("forbidden-scope")
		}
		if !isCreator(claims, tk) {
			return apperr.Authorization("forbidden-scope")
		}
		// Tickets predating the company migration carry no company; creator
		// identity alone decides for those.
		if tk.CompanyID == "" {
			return nil
		}
		ok, err := a.members.Contains(claims.UserID, tk.CompanyID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Authorization("forbidden-scope")
		}
		return nil
	}

	return apperr.Authorization("forbidden-scope")
}

// isCreator matches by user reference, accepting the legacy email shape for
// tickets created before the creator backfill.
func isCreator(claims *types.Claims, tk *ticket.Ticket) bool {
	if tk.CreatedBy != "" && tk.CreatedBy == claims.UserID {
		return true
	}
	return tk.CreatedBy == "" && tk.CreatedByEmail != "" &&
		strings.EqualFold(tk.CreatedByEmail, claims.Email)
}
