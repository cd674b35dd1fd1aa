package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Ticket   TicketRepo
	Invoice  InvoiceRepo
	Company  CompanyRepo
	Category CategoryRepo
	User     UserRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Ticket:   NewTicketRepo(db),
		Invoice:  NewInvoiceRepo(db),
		Company:  NewCompanyRepo(db),
		Category: NewCategoryRepo(db),
		User:     NewUserRepo(db),
		db:       db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Ticket:   r.Ticket.WithTx(tx),
		Invoice:  r.Invoice.WithTx(tx),
		Company:  r.Company.WithTx(tx),
		Category: r.Category.WithTx(tx),
		User:     r.User.WithTx(tx),
		db:       tx,
	}
}

func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
