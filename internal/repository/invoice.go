package repository

import (
	"fmt"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/invoice"
	"gorm.io/gorm"
)

type InvoiceRepo interface {
	Create(inv *invoice.Invoice) error
	FindByID(id string) (invoice.Invoice, error)
	// FindActiveByTicket returns the invoice holding an active status
	// (pending, approved or processed) for the ticket, if any.
	FindActiveByTicket(ticketID string) (invoice.Invoice, error)
	ListByTicket(ticketID string) ([]invoice.Invoice, error)
	// UpdateStatusIf applies fields only when the invoice currently holds one
	// of the given states. It is the atomic guard for every check-then-mutate
	// transition: zero matched rows means the transition lost the race or was
	// replayed.
	UpdateStatusIf(id string, from []invoice.Status, fields map[string]any) (int64, error)
	WithTx(tx *gorm.DB) InvoiceRepo
}

type DBInvoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) *DBInvoiceRepo {
	return &DBInvoiceRepo{db: db}
}

func (r *DBInvoiceRepo) Create(inv *invoice.Invoice) error {
	return r.db.Create(inv).Error
}

func (r *DBInvoiceRepo) FindByID(id string) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.Where("id = ?", id).First(&inv).Error
	return inv, err
}

func (r *DBInvoiceRepo) FindActiveByTicket(ticketID string) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.
		Where("ticket_id = ? AND status IN ?", ticketID, invoice.ActiveStatuses()).
		First(&inv).Error
	return inv, err
}

func (r *DBInvoiceRepo) ListByTicket(ticketID string) ([]invoice.Invoice, error) {
	var invoices []invoice.Invoice
	err := r.db.Where("ticket_id = ?", ticketID).Order("created_at desc").Find(&invoices).Error
	return invoices, err
}

func (r *DBInvoiceRepo) UpdateStatusIf(id string, from []invoice.Status, fields map[string]any) (int64, error) {
	res := r.db.Model(&invoice.Invoice{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// EnsureInvoiceIndexes creates the partial unique index that enforces
// at-most-one-active-invoice per ticket at the database. The service's
// pre-insert lookup keeps the friendly conflict error; the index closes
// the window between two concurrent creates.
func EnsureInvoiceIndexes(db *gorm.DB) error {
	statuses := invoice.ActiveStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + string(s) + "'"
	}
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_active_ticket ON invoices (ticket_id) WHERE status IN (%s)",
		strings.Join(quoted, ", "),
	)).Error
}

func (r *DBInvoiceRepo) WithTx(tx *gorm.DB) InvoiceRepo {
	if tx == nil {
		return r
	}
	return &DBInvoiceRepo{db: tx}
}
