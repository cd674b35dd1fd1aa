package application

import (
	"errors"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryExists = apperr.Conflict("Category with this name already exists")

type CategoryService struct {
	Repos *repository.Repos
}

func NewCategoryService(repos *repository.Repos) *CategoryService {
	return &CategoryService{Repos: repos}
}

func (s *CategoryService) Create(input category.CreateCategoryInput) (*category.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("Category name is required")
	}

	nameLower := strings.ToLower(name)
	if _, err := s.Repos.Category.FindByNameLower(nameLower); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &category.Category{
		ID:        uuid.NewString(),
		Name:      name,
		NameLower: nameLower,
		Active:    true,
	}
	if err := s.Repos.Category.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List() ([]category.Category, error) {
	return s.Repos.Category.List()
}
