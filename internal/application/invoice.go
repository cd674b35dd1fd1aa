package application

import (
	"context"
	"errors"
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/Harishkumar132003/service-app-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound   = apperr.NotFound("Invoice not found")
	ErrInvoiceExists     = apperr.Conflict("Invoice already exists for this ticket")
	ErrInvoiceNotPending = apperr.State("Invoice is not pending approval")
	ErrInvoiceNotReady   = apperr.State("Invoice not ready for processing")
	ErrMissingEvidence   = apperr.Validation("Invoice requires an amount or a supporting image")
)

type InvoiceService struct {
	Repos   *repository.Repos
	Images  ImageStore
	Authz   *Authorizer
	Members *MembershipIndex
}

func NewInvoiceService(repos *repository.Repos, images ImageStore, authz *Authorizer, members *MembershipIndex) *InvoiceService {
	return &InvoiceService{Repos: repos, Images: images, Authz: authz, Members: members}
}

// Create raises an invoice for a ticket and moves the ticket to manager
// approval. At most one invoice per ticket may be active (pending, approved
// or processed) at a time.
func (s *InvoiceService) Create(ctx context.Context, claims *types.Claims, input invoice.CreateInvoiceInput, image *Upload) (*invoice.Invoice, error) {
	if err := s.Authz.Authorize(claims, TransitionCreateInvoice, nil); err != nil {
		return nil, err
	}

	tk, err := s.Repos.Ticket.FindByID(input.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if input.Amount == nil && image == nil {
		return nil, ErrMissingEvidence
	}

	if _, err := s.Repos.Invoice.FindActiveByTicket(tk.ID); err == nil {
		return nil, ErrInvoiceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var imageRef string
	if image != nil {
		imageRef, err = s.Images.Save(ctx, image.Reader, image.Size, image.Filename, image.ContentType, "invoice")
		if err != nil {
			return nil, err
		}
	}

	inv := &invoice.Invoice{
		ID:       uuid.NewString(),
		TicketID: tk.ID,
		Amount:   input.Amount,
		Image:    imageRef,
		Status:   invoice.StatusPendingApproval,
	}
	if err := s.Repos.Invoice.Create(inv); err != nil {
		// The partial unique index catches the create that lost a race with a
		// concurrent one; surface it the same way as the sequential lookup.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInvoiceExists
		}
		return nil, err
	}

	// Forward-progress side effect after the insert; the amount is cached on
	// the ticket for listing.
	if _, err := s.Repos.Ticket.Updates(tk.ID, map[string]any{
		"status":         ticket.StatusManagerApproval,
		"invoice_id":     inv.ID,
		"invoice_amount": input.Amount,
	}); err != nil {
		return nil, err
	}
	return inv, nil
}

// Approve moves a pending invoice to Approved and the ticket to provider
// assignment. The status check and mutation are a single conditional update
// so a replay or a concurrent approval observes zero matched rows.
func (s *InvoiceService) Approve(claims *types.Claims, invoiceID string) error {
	inv, tk, err := s.resolve(invoiceID)
	if err != nil {
		return err
	}
	if err := s.Authz.Authorize(claims, TransitionApproveInvoice, &tk); err != nil {
		return err
	}

	now := time.Now()
	matched, err := s.Repos.Invoice.UpdateStatusIf(inv.ID,
		[]invoice.Status{invoice.StatusPendingApproval},
		map[string]any{
			"status":      invoice.StatusApproved,
			"approved_at": now,
			"updated_by":  claims.UserID,
		})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrInvoiceNotPending
	}

	_, err = s.Repos.Ticket.Updates(tk.ID, map[string]any{
		"status": ticket.StatusProviderAssignment,
	})
	return err
}

// Reject returns the ticket to admin review. The rejected invoice stays for
// audit, but the ticket's invoice link is cleared so a fresh invoice can be
// raised.
func (s *InvoiceService) Reject(claims *types.Claims, invoiceID string) error {
	inv, tk, err := s.resolve(invoiceID)
	if err != nil {
		return err
	}
	if err := s.Authz.Authorize(claims, TransitionRejectInvoice, &tk); err != nil {
		return err
	}

	now := time.Now()
	matched, err := s.Repos.Invoice.UpdateStatusIf(inv.ID,
		[]invoice.Status{invoice.StatusPendingApproval},
		map[string]any{
			"status":      invoice.StatusRejected,
			"approved_at": now,
			"updated_by":  claims.UserID,
		})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrInvoiceNotPending
	}

	_, err = s.Repos.Ticket.Updates(tk.ID, map[string]any{
		"status":         ticket.StatusAdminReview,
		"invoice_id":     nil,
		"invoice_amount": nil,
	})
	return err
}

// Process settles an approved invoice: it becomes Processed and paid, and
// the ticket completes. An optional payment evidence image may be attached.
func (s *InvoiceService) Process(ctx context.Context, claims *types.Claims, invoiceID string, paymentImage *Upload) error {
	inv, tk, err := s.resolve(invoiceID)
	if err != nil {
		return err
	}
	if err := s.Authz.Authorize(claims, TransitionProcessPayment, &tk); err != nil {
		return err
	}

	fields := map[string]any{
		"status":       invoice.StatusProcessed,
		"paid":         true,
		"processed_at": time.Now(),
		"updated_by":   claims.UserID,
	}
	if paymentImage != nil {
		ref, err := s.Images.Save(ctx, paymentImage.Reader, paymentImage.Size, paymentImage.Filename, paymentImage.ContentType, "payment")
		if err != nil {
			return err
		}
		fields["payment_image"] = ref
	}

	matched, err := s.Repos.Invoice.UpdateStatusIf(inv.ID,
		[]invoice.Status{invoice.StatusApproved}, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrInvoiceNotReady
	}

	_, err = s.Repos.Ticket.Updates(tk.ID, map[string]any{
		"status": ticket.StatusCompleted,
	})
	return err
}

// Get returns an invoice if the identity may see its ticket. A hidden
// invoice reads as absent, like the ticket read path.
func (s *InvoiceService) Get(claims *types.Claims, invoiceID string) (invoice.Invoice, error) {
	if claims == nil || claims.UserID == "" {
		return invoice.Invoice{}, apperr.Authentication("Missing token")
	}

	inv, tk, err := s.resolve(invoiceID)
	if err != nil {
		return invoice.Invoice{}, err
	}

	visible, err := ticketVisibleTo(claims, &tk, s.Members)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if !visible {
		return invoice.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// resolve loads the invoice and its ticket; the ticket carries the company
// the scope checks run against.
func (s *InvoiceService) resolve(invoiceID string) (invoice.Invoice, ticket.Ticket, error) {
	inv, err := s.Repos.Invoice.FindByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice.Invoice{}, ticket.Ticket{}, ErrInvoiceNotFound
		}
		return invoice.Invoice{}, ticket.Ticket{}, err
	}
	tk, err := s.Repos.Ticket.FindByID(inv.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice.Invoice{}, ticket.Ticket{}, ErrTicketNotFound
		}
		return invoice.Invoice{}, ticket.Ticket{}, err
	}
	return inv, tk, nil
}
