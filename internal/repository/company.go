package repository

import (
	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
	"gorm.io/gorm"
)

type CompanyRepo interface {
	Create(c *company.Company) error
	// FindByID returns only active companies; deactivated ones read as absent.
	FindByID(id string) (company.Company, error)
	FindByEmail(email string) (company.Company, error)
	List() ([]company.Company, error)
	Updates(id string, fields map[string]any) (int64, error)
	WithTx(tx *gorm.DB) CompanyRepo
}

type DBCompanyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) *DBCompanyRepo {
	return &DBCompanyRepo{db: db}
}

func (r *DBCompanyRepo) Create(c *company.Company) error {
	return r.db.Create(c).Error
}

func (r *DBCompanyRepo) FindByID(id string) (company.Company, error) {
	var c company.Company
	err := r.db.Where("id = ? AND active = true", id).First(&c).Error
	return c, err
}

func (r *DBCompanyRepo) FindByEmail(email string) (company.Company, error) {
	var c company.Company
	err := r.db.Where("email = ?", email).First(&c).Error
	return c, err
}

func (r *DBCompanyRepo) List() ([]company.Company, error) {
	var companies []company.Company
	err := r.db.Where("active = true").Order("name asc").Find(&companies).Error
	return companies, err
}

func (r *DBCompanyRepo) Updates(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&company.Company{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *DBCompanyRepo) WithTx(tx *gorm.DB) CompanyRepo {
	if tx == nil {
		return r
	}
	return &DBCompanyRepo{db: tx}
}
