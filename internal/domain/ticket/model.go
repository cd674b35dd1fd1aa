package ticket

import (
	"encoding/json"
	"time"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusSubmitted            Status = "Submitted"
	StatusAdminReview          Status = "Admin Review"
	StatusManagerApproval      Status = "Manager Approval"
	StatusProviderAssignment   Status = "Service Provider Assignment"
	StatusWorkCompletion       Status = "Work Completion"
	StatusMemberVerification   Status = "Member Verification"
	StatusAccountantProcessing Status = "Accountant Processing"
	StatusCompleted            Status = "Completed"
)

// Ticket is a repair/service request moving through the workflow. It is
// never deleted; Completed is terminal. InvoiceID is set exactly while an
// active invoice (pending, approved or processed) exists for the ticket.
type Ticket struct {
	ID               string            `gorm:"primaryKey;size:36" json:"id"`
	CategoryID       string            `gorm:"size:36;not null;index" json:"category_id"`
	Category         category.Category `gorm:"foreignKey:CategoryID" json:"category"`
	Description      string            `gorm:"not null" json:"description"`
	CreatedBy        string            `gorm:"size:36;index" json:"created_by"`
	CreatedByEmail   string            `gorm:"size:255" json:"created_by_email"`
	CompanyID        string            `gorm:"size:36;index" json:"company_id"`
	Status           Status            `gorm:"size:64;not null;default:'Submitted'" json:"status"`
	InitialImage     string            `gorm:"size:255" json:"initial_image"`
	CompletionImages datatypes.JSON    `json:"completion_images"`
	AssignedProvider *string           `gorm:"size:36;index" json:"assigned_provider"`
	InvoiceID        *string           `gorm:"size:36" json:"invoice_id"`
	InvoiceAmount    *float64          `json:"invoice_amount,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// CompletionImageList decodes the stored JSON array of image refs.
func (t *Ticket) CompletionImageList() []string {
	if len(t.CompletionImages) == 0 {
		return nil
	}
	var refs []string
	if err := json.Unmarshal(t.CompletionImages, &refs); err != nil {
		return nil
	}
	return refs
}

// EncodeImageRefs marshals image refs for the CompletionImages column.
func EncodeImageRefs(refs []string) datatypes.JSON {
	b, _ := json.Marshal(refs)
	return datatypes.JSON(b)
}
