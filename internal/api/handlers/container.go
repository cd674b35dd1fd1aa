package handlers

import (
	"github.com/Harishkumar132003/service-app-backend/internal/application"
)

type Handlers struct {
	Auth     *AuthHandler
	Ticket   *TicketHandler
	Invoice  *InvoiceHandler
	Company  *CompanyHandler
	Category *CategoryHandler
	User     *UserHandler
}

func New(services *application.Services) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(services.Auth),
		Ticket:   NewTicketHandler(services.Ticket),
		Invoice:  NewInvoiceHandler(services.Invoice),
		Company:  NewCompanyHandler(services.Company),
		Category: NewCategoryHandler(services.Category),
		User:     NewUserHandler(services.Auth, services.User),
	}
}
