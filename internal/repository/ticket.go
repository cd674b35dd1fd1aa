package repository

import (
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"gorm.io/gorm"
)

// ListScope is the visibility filter applied in SQL, never as a post-filter.
// A zero scope means unrestricted (admin). Empty forces a fail-closed empty
// result when a scoped role has no resolvable company.
type ListScope struct {
	CompanyIDs       []string
	CreatedBy        string
	AssignedProvider string
	Empty            bool
}

type TicketRepo interface {
	Create(t *ticket.Ticket) error
	FindByID(id string) (ticket.Ticket, error)
	List(scope ListScope) ([]ticket.Ticket, error)
	Updates(id string, fields map[string]any) (int64, error)
	UpdateStatusIf(id string, from []ticket.Status, fields map[string]any) (int64, error)
	WithTx(tx *gorm.DB) TicketRepo
}

type DBTicketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) *DBTicketRepo {
	return &DBTicketRepo{db: db}
}

func (r *DBTicketRepo) Create(t *ticket.Ticket) error {
	return r.db.Create(t).Error
}

func (r *DBTicketRepo) FindByID(id string) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := r.db.Preload("Category").Where("id = ?", id).First(&t).Error
	return t, err
}

func (r *DBTicketRepo) List(scope ListScope) ([]ticket.Ticket, error) {
	if scope.Empty {
		return []ticket.Ticket{}, nil
	}

	q := r.db.Preload("Category").Order("created_at desc")
	if len(scope.CompanyIDs) > 0 {
		q = q.Where("company_id IN ?", scope.CompanyIDs)
	}
	if scope.CreatedBy != "" {
		q = q.Where("created_by = ?", scope.CreatedBy)
	}
	if scope.AssignedProvider != "" {
		q = q.Where("assigned_provider = ?", scope.AssignedProvider)
	}

	var tickets []ticket.Ticket
	err := q.Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) Updates(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&ticket.Ticket{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// UpdateStatusIf applies fields only when the ticket is currently in one of
// the given states, as a single conditional UPDATE.
func (r *DBTicketRepo) UpdateStatusIf(id string, from []ticket.Status, fields map[string]any) (int64, error) {
	res := r.db.Model(&ticket.Ticket{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *DBTicketRepo) WithTx(tx *gorm.DB) TicketRepo {
	if tx == nil {
		return r
	}
	return &DBTicketRepo{db: tx}
}
