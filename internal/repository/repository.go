package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bookloans/library-service/internal/model"
)

type Repository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id int) error
	SearchBooks(ctx context.Context, term string) ([]model.Book, error)

	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int) (model.Customer, error)
	CreateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error)
	UpdateCustomer(ctx context.Context, customer model.Customer) error
	DeleteCustomer(ctx context.Context, id int) error
	SearchCustomers(ctx context.Context, term string) ([]model.Customer, error)

	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id int) (model.Loan, error)
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	UpdateLoan(ctx context.Context, loan model.Loan) error
	DeleteLoan(ctx context.Context, id int) error
	MarkLoanReturned(ctx context.Context, id int, returnedOn time.Time) (model.Loan, error)

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	GetUserByName(ctx context.Context, username string) (model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName     = `books`
	customersTableName = `customers`
	loansTableName     = `loans`
	usersTableName     = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
