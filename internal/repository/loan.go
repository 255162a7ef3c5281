package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/model"
)

func (r *repository) ListLoans(ctx context.Context) ([]model.Loan, error) {
	query, args, err := qb.Select("id", "cust_id", "book_id", "loan_date", "due_date", "returned_on").
		From(loansTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	loans := make([]model.Loan, 0)
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *repository) GetLoan(ctx context.Context, id int) (model.Loan, error) {
	query, args, err := qb.Select("id", "cust_id", "book_id", "loan_date", "due_date", "returned_on").
		From(loansTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns("cust_id", "book_id", "loan_date", "due_date").
		Values(loan.CustID, loan.BookID, loan.LoanDate, loan.DueDate).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var created model.Loan
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}
	return created, nil
}

func (r *repository) UpdateLoan(ctx context.Context, loan model.Loan) error {
	query, args, err := qb.Update(loansTableName).
		Set("cust_id", loan.CustID).
		Set("book_id", loan.BookID).
		Set("loan_date", loan.LoanDate).
		Set("due_date", loan.DueDate).
		Where(sq.Eq{"id": loan.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *repository) DeleteLoan(ctx context.Context, id int) error {
	query, args, err := qb.Delete(loansTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkLoanReturned records the return event for a loan that is still open.
// Matching only returned_on is null makes the Returned state terminal.
func (r *repository) MarkLoanReturned(ctx context.Context, id int, returnedOn time.Time) (model.Loan, error) {
	q := fmt.Sprintf(`update %s
	set returned_on = $2
	where id = $1 and returned_on is null
	returning id, cust_id, book_id, loan_date, due_date, returned_on`, loansTableName)

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, q, id, returnedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}
