package handler

import (
	"context"

	"github.com/bookloans/library-service/internal/model"
	"github.com/bookloans/library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.BookCreateRequest) error
	DeleteBook(ctx context.Context, id int) error
	SearchBooks(ctx context.Context, term string) ([]model.Book, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, req model.CustomerCreateRequest) (model.Customer, error)
	UpdateCustomer(ctx context.Context, id int, req model.CustomerCreateRequest) error
	DeleteCustomer(ctx context.Context, id int) error
	SearchCustomers(ctx context.Context, term string) ([]model.Customer, error)
}

type LoanService interface {
	ListLoans(ctx context.Context) ([]model.LoanItem, error)
	CreateLoan(ctx context.Context, req model.LoanCreateRequest) (model.Loan, error)
	UpdateLoan(ctx context.Context, id int, req model.LoanCreateRequest) (model.Loan, error)
	DeleteLoan(ctx context.Context, id int) error
	ReturnLoan(ctx context.Context, id int) (model.LoanItem, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.UserCreateRequest) (model.User, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

var (
	_ BookService     = (*service.Service)(nil)
	_ CustomerService = (*service.Service)(nil)
	_ LoanService     = (*service.Service)(nil)
	_ AuthService     = (*service.Service)(nil)
)
