package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybudget/internal/errors"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// CategoryInput carries the mutable fields of a category.
type CategoryInput struct {
	Name           string
	BudgetedAmount decimal.Decimal
	Description    string
	ColorCode      string
}

// CategoryService exposes per-user category CRUD.
type CategoryService interface {
	Create(ctx context.Context, userID uint, in CategoryInput) (*model.Category, error)
	Get(ctx context.Context, id, userID uint) (*model.Category, error)
	List(ctx context.Context, userID uint) ([]model.Category, error)
	Update(ctx context.Context, id, userID uint, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id, userID uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, userID uint, in CategoryInput) (*model.Category, error) {
	category := &model.Category{
		UserID:         userID,
		Name:           in.Name,
		BudgetedAmount: in.BudgetedAmount,
		Description:    in.Description,
		ColorCode:      in.ColorCode,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id, userID uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *categoryService) Update(ctx context.Context, id, userID uint, in CategoryInput) (*model.Category, error) {
	category, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.BudgetedAmount = in.BudgetedAmount
	category.Description = in.Description
	category.ColorCode = in.ColorCode

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id, userID uint) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return errors.ErrNotFound
	}
	return nil
}
