package service

import (
	"context"
	"time"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/model"
)

// dueOffsets maps a book category to its loan duration in days.
var dueOffsets = map[int]int{
	1: 10,
	2: 5,
	3: 2,
}

func dueDate(bookType int, loanDate time.Time) (time.Time, error) {
	days, ok := dueOffsets[bookType]
	if !ok {
		return time.Time{}, errs.ErrInvalidBookType
	}
	return loanDate.AddDate(0, 0, days), nil
}

func (s *Service) ListLoans(ctx context.Context) ([]model.LoanItem, error) {
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]model.LoanItem, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.Item(now, s.finePerDay))
	}
	return items, nil
}

// CreateLoan resolves the referenced book and customer before any write, so
// a missing reference leaves the store untouched.
func (s *Service) CreateLoan(ctx context.Context, req model.LoanCreateRequest) (model.Loan, error) {
	book, err := s.repo.GetBook(ctx, req.BookID)
	if err != nil {
		return model.Loan{}, err
	}
	if _, err := s.repo.GetCustomer(ctx, req.CustID); err != nil {
		return model.Loan{}, err
	}
	due, err := dueDate(book.BookType, req.LoanDate.Time)
	if err != nil {
		return model.Loan{}, err
	}
	return s.repo.CreateLoan(ctx, model.Loan{
		CustID:   req.CustID,
		BookID:   req.BookID,
		LoanDate: req.LoanDate,
		DueDate:  model.NewDate(due),
	})
}

// UpdateLoan rewrites the loan terms and recomputes the due date from the
// new loan date and the category of the (re-resolved) book.
func (s *Service) UpdateLoan(ctx context.Context, id int, req model.LoanCreateRequest) (model.Loan, error) {
	loan, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}
	book, err := s.repo.GetBook(ctx, req.BookID)
	if err != nil {
		return model.Loan{}, err
	}
	if _, err := s.repo.GetCustomer(ctx, req.CustID); err != nil {
		return model.Loan{}, err
	}
	due, err := dueDate(book.BookType, req.LoanDate.Time)
	if err != nil {
		return model.Loan{}, err
	}

	loan.CustID = req.CustID
	loan.BookID = req.BookID
	loan.LoanDate = req.LoanDate
	loan.DueDate = model.NewDate(due)
	if err := s.repo.UpdateLoan(ctx, loan); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (s *Service) DeleteLoan(ctx context.Context, id int) error {
	return s.repo.DeleteLoan(ctx, id)
}

func (s *Service) ReturnLoan(ctx context.Context, id int) (model.LoanItem, error) {
	now := time.Now()
	loan, err := s.repo.MarkLoanReturned(ctx, id, now.UTC().Truncate(24*time.Hour))
	if err != nil {
		return model.LoanItem{}, err
	}
	return loan.Item(now, s.finePerDay), nil
}
