package repository

import (
	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(c *category.Category) error
	FindByID(id string) (category.Category, error)
	FindByNameLower(nameLower string) (category.Category, error)
	List() ([]category.Category, error)
	WithTx(tx *gorm.DB) CategoryRepo
}

type DBCategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *DBCategoryRepo {
	return &DBCategoryRepo{db: db}
}

func (r *DBCategoryRepo) Create(c *category.Category) error {
	return r.db.Create(c).Error
}

func (r *DBCategoryRepo) FindByID(id string) (category.Category, error) {
	var c category.Category
	err := r.db.Where("id = ? AND active = true", id).First(&c).Error
	return c, err
}

func (r *DBCategoryRepo) FindByNameLower(nameLower string) (category.Category, error) {
	var c category.Category
	err := r.db.Where("name_lower = ? AND active = true", nameLower).First(&c).Error
	return c, err
}

func (r *DBCategoryRepo) List() ([]category.Category, error) {
	var categories []category.Category
	err := r.db.Where("active = true").Order("name_lower asc").Find(&categories).Error
	return categories, err
}

func (r *DBCategoryRepo) WithTx(tx *gorm.DB) CategoryRepo {
	if tx == nil {
		return r
	}
	return &DBCategoryRepo{db: tx}
}
