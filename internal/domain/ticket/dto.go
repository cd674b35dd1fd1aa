package ticket

type CreateTicketInput struct {
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
}

type AssignInput struct {
	ProviderEmail string `json:"provider_email" binding:"required"`
}
