package invoice

import "time"

type Status string

const (
	StatusPendingApproval Status = "Pending Manager Approval"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
	StatusProcessed       Status = "Processed"
)

// ActiveStatuses are the invoice states that block creating another invoice
// for the same ticket. Rejected does not: the ticket is back in admin
// review and may get a fresh invoice.
func ActiveStatuses() []Status {
	return []Status{StatusPendingApproval, StatusApproved, StatusProcessed}
}

// Invoice bills the work on exactly one ticket. It must carry an amount, a
// supporting image, or both. UpdatedBy records the last approver, rejecter
// or processor.
type Invoice struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	TicketID     string     `gorm:"size:36;not null;index" json:"ticket_id"`
	Amount       *float64   `json:"amount"`
	Image        string     `gorm:"size:255" json:"image"`
	PaymentImage string     `gorm:"size:255" json:"payment_image"`
	Status       Status     `gorm:"size:64;not null;default:'Pending Manager Approval'" json:"status"`
	Paid         bool       `gorm:"default:false" json:"paid"`
	UpdatedBy    string     `gorm:"size:36" json:"updated_by"`
	ApprovedAt   *time.Time `json:"approved_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
