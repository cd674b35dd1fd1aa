package invoice

type CreateInvoiceInput struct {
	TicketID string   `form:"ticket_id" binding:"required"`
	Amount   *float64 `form:"amount"`
}
