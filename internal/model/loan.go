package model

import (
	"time"
)

type LoanStatus string

const (
	StatusNotReturned LoanStatus = "Not returned"
	StatusLate        LoanStatus = "Late"
	StatusReturned    LoanStatus = "Returned"
)

type Loan struct {
	ID         int        `json:"id" db:"id"`
	CustID     int        `json:"cust_id" db:"cust_id"`
	BookID     int        `json:"book_id" db:"book_id"`
	LoanDate   Date       `json:"loan_date" db:"loan_date"`
	DueDate    Date       `json:"due_date" db:"due_date"`
	ReturnedOn *time.Time `json:"-" db:"returned_on"`
}

// LoanItem is a loan decorated with its derived state. is_late, loan_status
// and fine are recomputed against the current date on every read and are
// never persisted.
type LoanItem struct {
	Loan       `json:",inline"`
	ReturnedOn *Date      `json:"returned_on"`
	IsLate     bool       `json:"is_late"`
	LoanStatus LoanStatus `json:"loan_status"`
	Fine       float64    `json:"fine"`
}

type LoanCreateRequest struct {
	CustID   int  `json:"cust_id" validate:"required"`
	BookID   int  `json:"book_id" validate:"required"`
	LoanDate Date `json:"loan_date" validate:"required"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StatusAt derives the loan state at the given instant. A return event is
// terminal; without one the loan turns late once the current date passes
// the due date.
func (l Loan) StatusAt(now time.Time) (bool, LoanStatus) {
	if l.ReturnedOn != nil {
		return false, StatusReturned
	}
	if midnight(now).After(midnight(l.DueDate.Time)) {
		return true, StatusLate
	}
	return false, StatusNotReturned
}

// FineAt accrues perDay for every whole day past the due date. Returned and
// on-time loans owe nothing.
func (l Loan) FineAt(now time.Time, perDay float64) float64 {
	if _, status := l.StatusAt(now); status != StatusLate {
		return 0
	}
	daysLate := int(midnight(now).Sub(midnight(l.DueDate.Time)).Hours() / 24)
	if daysLate <= 0 {
		return 0
	}
	return float64(daysLate) * perDay
}

// Item bundles a loan with the state derived at now.
func (l Loan) Item(now time.Time, finePerDay float64) LoanItem {
	isLate, status := l.StatusAt(now)
	item := LoanItem{
		Loan:       l,
		IsLate:     isLate,
		LoanStatus: status,
		Fine:       l.FineAt(now, finePerDay),
	}
	if l.ReturnedOn != nil {
		d := NewDate(*l.ReturnedOn)
		item.ReturnedOn = &d
	}
	return item
}
