package application

import (
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
)

type Services struct {
	Auth     *AuthService
	User     *UserService
	Ticket   *TicketService
	Invoice  *InvoiceService
	Company  *CompanyService
	Category *CategoryService
}

func New(repos *repository.Repos, images ImageStore) *Services {
	members := NewMembershipIndex(repos.User)
	authz := NewAuthorizer(members)

	return &Services{
		Auth:     NewAuthService(repos),
		User:     NewUserService(repos),
		Ticket:   NewTicketService(repos, images, authz, members),
		Invoice:  NewInvoiceService(repos, images, authz, members),
		Company:  NewCompanyService(repos),
		Category: NewCategoryService(repos),
	}
}
