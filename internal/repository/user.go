package repository

import (
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(u *user.User) error
	FindByID(id string) (user.User, error)
	FindByEmail(email string) (user.User, error)
	List(role string) ([]user.User, error)
	ListByCompany(companyID string) ([]user.User, error)
	CountByCompany(companyID string) (int64, error)
	Save(u *user.User) error
	Delete(id string) error
	// CompanyIDs is the membership set: the oversight companies from the
	// user_companies join, falling back to the singleton primary company
	// when the oversight set is empty. An empty result means no scope.
	CompanyIDs(userID string) ([]string, error)
	ReplaceCompanies(userID string, companyIDs []string) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *DBUserRepo) FindByID(id string) (user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	return u, err
}

func (r *DBUserRepo) FindByEmail(email string) (user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	return u, err
}

func (r *DBUserRepo) List(role string) ([]user.User, error) {
	q := r.db.Order("email asc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []user.User
	err := q.Find(&users).Error
	return users, err
}

func (r *DBUserRepo) ListByCompany(companyID string) ([]user.User, error) {
	var users []user.User
	err := r.db.Where("company_id = ?", companyID).Find(&users).Error
	return users, err
}

func (r *DBUserRepo) CountByCompany(companyID string) (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *DBUserRepo) Save(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *DBUserRepo) Delete(id string) error {
	return r.db.Delete(&user.User{}, "id = ?", id).Error
}

func (r *DBUserRepo) CompanyIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Table("user_companies").
		Select("company_id").
		Where("user_id = ?", userID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		return ids, nil
	}

	var u user.User
	if err := r.db.Select("company_id").Where("id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if u.CompanyID == nil || *u.CompanyID == "" {
		return nil, nil
	}
	return []string{*u.CompanyID}, nil
}

func (r *DBUserRepo) ReplaceCompanies(userID string, companyIDs []string) error {
	if err := r.db.Exec("DELETE FROM user_companies WHERE user_id = ?", userID).Error; err != nil {
		return err
	}
	for _, cid := range companyIDs {
		if err := r.db.Exec(
			"INSERT INTO user_companies (user_id, company_id) VALUES (?, ?)",
			userID, cid,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{db: tx}
}
