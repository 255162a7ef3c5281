package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookloans/library-service/internal/model"
	"github.com/bookloans/library-service/internal/repository"
	"github.com/bookloans/library-service/pkg/auth"
)

const defaultBookImage = "book.jpg"

type Service struct {
	log        *zap.Logger
	repo       repository.Repository
	jwtCfg     auth.Config
	finePerDay float64
}

func NewService(repo repository.Repository, jwtCfg auth.Config, finePerDay float64, log *zap.Logger) *Service {
	return &Service{
		log:        log,
		repo:       repo,
		jwtCfg:     jwtCfg,
		finePerDay: finePerDay,
	}
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error) {
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = defaultBookImage
	}
	return s.repo.CreateBook(ctx, model.Book{
		Name:          req.Name,
		Author:        req.Author,
		YearPublished: req.YearPublished,
		BookType:      req.BookType,
		ImageURL:      imageURL,
	})
}

func (s *Service) UpdateBook(ctx context.Context, id int, req model.BookCreateRequest) error {
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = defaultBookImage
	}
	return s.repo.UpdateBook(ctx, model.Book{
		ID:            id,
		Name:          req.Name,
		Author:        req.Author,
		YearPublished: req.YearPublished,
		BookType:      req.BookType,
		ImageURL:      imageURL,
	})
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) SearchBooks(ctx context.Context, term string) ([]model.Book, error) {
	return s.repo.SearchBooks(ctx, term)
}

func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, req model.CustomerCreateRequest) (model.Customer, error) {
	return s.repo.CreateCustomer(ctx, model.Customer{
		Name: req.Name,
		City: req.City,
		Age:  req.Age,
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, id int, req model.CustomerCreateRequest) error {
	return s.repo.UpdateCustomer(ctx, model.Customer{
		ID:   id,
		Name: req.Name,
		City: req.City,
		Age:  req.Age,
	})
}

func (s *Service) DeleteCustomer(ctx context.Context, id int) error {
	return s.repo.DeleteCustomer(ctx, id)
}

func (s *Service) SearchCustomers(ctx context.Context, term string) ([]model.Customer, error) {
	return s.repo.SearchCustomers(ctx, term)
}
