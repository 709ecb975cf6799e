package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybudget/internal/errors"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// TransactionInput carries the mutable fields of a transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Note        string
	Location    string
	CategoryID  *uint
	IsIncome    bool
}

// TransactionService exposes per-user transaction CRUD.
type TransactionService interface {
	Create(ctx context.Context, userID uint, in TransactionInput) (*model.Transaction, error)
	Get(ctx context.Context, id, userID uint) (*model.Transaction, error)
	List(ctx context.Context, userID uint) ([]model.Transaction, error)
	Update(ctx context.Context, id, userID uint, in TransactionInput) (*model.Transaction, error)
	Delete(ctx context.Context, id, userID uint) error
}

type transactionService struct {
	repo repository.TransactionRepository
}

// NewTransactionService builds a TransactionService.
func NewTransactionService(repo repository.TransactionRepository) TransactionService {
	return &transactionService{repo: repo}
}

func (s *transactionService) Create(ctx context.Context, userID uint, in TransactionInput) (*model.Transaction, error) {
	tx := &model.Transaction{
		UserID:      userID,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		Note:        in.Note,
		Location:    in.Location,
		CategoryID:  in.CategoryID,
		IsIncome:    in.IsIncome,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Get(ctx context.Context, id, userID uint) (*model.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, userID uint) ([]model.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *transactionService) Update(ctx context.Context, id, userID uint, in TransactionInput) (*model.Transaction, error) {
	tx, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	tx.Amount = in.Amount
	tx.Date = in.Date
	tx.Description = in.Description
	tx.Note = in.Note
	tx.Location = in.Location
	tx.CategoryID = in.CategoryID
	tx.IsIncome = in.IsIncome

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id, userID uint) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if !deleted {
		return errors.ErrNotFound
	}
	return nil
}
