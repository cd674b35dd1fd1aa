package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound    = apperr.NotFound("Ticket not found")
	ErrProviderNotFound  = apperr.NotFound("Provider not found")
	ErrNoCompany         = apperr.Validation("User does not belong to a company")
	ErrUnknownCategory   = apperr.Validation("Unknown category")
	ErrMissingImage      = apperr.Validation("Image is required")
	ErrNoCompletionImage = apperr.Validation("At least one completion image is required")
)

type TicketService struct {
	Repos   *repository.Repos
	Images  ImageStore
	Authz   *Authorizer
	Members *MembershipIndex
}

func NewTicketService(repos *repository.Repos, images ImageStore, authz *Authorizer, members *MembershipIndex) *TicketService {
	return &TicketService{Repos: repos, Images: images, Authz: authz, Members: members}
}

// Create submits a new ticket. The company is bound from the creator's
// profile; a creator without a company cannot submit.
func (s *TicketService) Create(ctx context.Context, claims *types.Claims, input ticket.CreateTicketInput, image *Upload) (*ticket.Ticket, error) {
	if err := s.Authz.Authorize(claims, TransitionCreateTicket, nil); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperr.Validation("category and description are required")
	}

	nameLower := strings.ToLower(strings.TrimSpace(input.Category))
	cat, err := s.Repos.Category.FindByNameLower(nameLower)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	creator, err := s.Repos.User.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("Unknown user")
		}
		return nil, err
	}
	if creator.CompanyID == nil || *creator.CompanyID == "" {
		return nil, ErrNoCompany
	}

	if image == nil {
		return nil, ErrMissingImage
	}
	imageRef, err := s.Images.Save(ctx, image.Reader, image.Size, image.Filename, image.ContentType, "ticket_initial")
	if err != nil {
		return nil, err
	}

	t := &ticket.Ticket{
		ID:             uuid.NewString(),
		CategoryID:     cat.ID,
		Category:       cat,
		Description:    description,
		CreatedBy:      creator.ID,
		CreatedByEmail: creator.Email,
		CompanyID:      *creator.CompanyID,
		Status:         ticket.StatusSubmitted,
		InitialImage:   imageRef,
	}
	if err := s.Repos.Ticket.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns tickets visible to the identity. Scoping is a query filter:
// users see their company, managers and accountants the union of their
// oversight companies, providers their assignments, admins everything. A
// scoped role with no resolvable company gets an empty set, not an error.
func (s *TicketService) List(claims *types.Claims) ([]ticket.Ticket, error) {
	if err := s.Authz.Authorize(claims, TransitionListTickets, nil); err != nil {
		return nil, err
	}

	scope, err := s.listScope(claims)
	if err != nil {
		return nil, err
	}

	tickets, err := s.Repos.Ticket.List(scope)
	if err != nil {
		return nil, err
	}

	// Backfill the display amount for tickets linked before it was cached.
	for i := range tickets {
		t := &tickets[i]
		if t.InvoiceID == nil || t.InvoiceAmount != nil {
			continue
		}
		inv, err := s.Repos.Invoice.FindByID(*t.InvoiceID)
		if err != nil {
			continue
		}
		t.InvoiceAmount = inv.Amount
	}
	return tickets, nil
}

func (s *TicketService) listScope(claims *types.Claims) (repository.ListScope, error) {
	switch user.Role(claims.Role) {
	case user.RoleAdmin:
		return repository.ListScope{}, nil

	case user.RoleUser:
		u, err := s.Repos.User.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ListScope{Empty: true}, nil
			}
			return repository.ListScope{}, err
		}
		if u.CompanyID == nil || *u.CompanyID == "" {
			return repository.ListScope{Empty: true}, nil
		}
		return repository.ListScope{CompanyIDs: []string{*u.CompanyID}}, nil

	case user.RoleManager, user.RoleAccountant:
		ids, err := s.Members.CompanyIDs(claims.UserID)
		if err != nil {
			return repository.ListScope{}, err
		}
		if len(ids) == 0 {
			return repository.ListScope{Empty: true}, nil
		}
		return repository.ListScope{CompanyIDs: ids}, nil

	case user.RoleServiceProvider:
		return repository.ListScope{AssignedProvider: claims.UserID}, nil
	}

	return repository.ListScope{Empty: true}, nil
}

// AssignProvider routes a ticket to a service provider. Deliberately has no
// current-status precondition; the guard lives in the transition table and
// can be tightened there.
func (s *TicketService) AssignProvider(claims *types.Claims, ticketID, providerEmail string) error {
	if err := s.Authz.Authorize(claims, TransitionAssignProvider, nil); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(providerEmail))
	if email == "" {
		return apperr.Validation("provider_email required")
	}
	provider, err := s.Repos.User.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderNotFound
		}
		return err
	}

	matched, err := s.Repos.Ticket.Updates(ticketID, map[string]any{
		"assigned_provider": provider.ID,
		"status":            ticket.StatusProviderAssignment,
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// SubmitCompletion records the provider's work evidence. The image set
// replaces any prior submission, it does not append.
func (s *TicketService) SubmitCompletion(ctx context.Context, claims *types.Claims, ticketID string, images []Upload) ([]string, error) {
	if err := s.Authz.Authorize(claims, TransitionSubmitCompletion, nil); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoCompletionImage
	}

	if _, err := s.Repos.Ticket.FindByID(ticketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	refs := make([]string, 0, len(images))
	for _, img := range images {
		ref, err := s.Images.Save(ctx, img.Reader, img.Size, img.Filename, img.ContentType, "ticket_complete")
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if _, err := s.Repos.Ticket.Updates(ticketID, map[string]any{
		"completion_images": ticket.EncodeImageRefs(refs),
		"status":            ticket.StatusWorkCompletion,
	}); err != nil {
		return nil, err
	}
	return refs, nil
}

// MemberVerify lets the requester confirm the completed work, moving the
// ticket to accountant processing. Only the creator, scoped to the ticket's
// company, may verify.
func (s *TicketService) MemberVerify(claims *types.Claims, ticketID string) error {
	tk, err := s.Repos.Ticket.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return err
	}

	if err := s.Authz.Authorize(claims, TransitionMemberVerify, &tk); err != nil {
		return err
	}

	_, err = s.Repos.Ticket.Updates(ticketID, map[string]any{
		"status": ticket.StatusAccountantProcessing,
	})
	return err
}

// Get returns a single ticket if the identity may see it.
func (s *TicketService) Get(claims *types.Claims, ticketID string) (ticket.Ticket, error) {
	tk, err := s.Repos.Ticket.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket.Ticket{}, ErrTicketNotFound
		}
		return ticket.Ticket{}, err
	}

	visible, err := s.visible(claims, &tk)
	if err != nil {
		return ticket.Ticket{}, err
	}
	if !visible {
		// Indistinguishable from absent to avoid leaking existence.
		return ticket.Ticket{}, ErrTicketNotFound
	}
	return tk, nil
}

func (s *TicketService) visible(claims *types.Claims, tk *ticket.Ticket) (bool, error) {
	return ticketVisibleTo(claims, tk, s.Members)
}

// ticketVisibleTo is the shared read predicate: admins see everything,
// providers their assignments, everyone else their membership companies.
// Invoices inherit the visibility of their ticket.
func ticketVisibleTo(claims *types.Claims, tk *ticket.Ticket, members *MembershipIndex) (bool, error) {
	switch user.Role(claims.Role) {
	case user.RoleAdmin:
		return true, nil
	case user.RoleServiceProvider:
		return tk.AssignedProvider != nil && *tk.AssignedProvider == claims.UserID, nil
	case user.RoleUser, user.RoleManager, user.RoleAccountant:
		return members.Contains(claims.UserID, tk.CompanyID)
	}
	return false, nil
}
