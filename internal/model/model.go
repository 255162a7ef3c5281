package model

type Book struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Author        string `json:"author" db:"author"`
	YearPublished int    `json:"year_published" db:"year_published"`
	BookType      int    `json:"book_type" db:"book_type"`
	ImageURL      string `json:"image_url" db:"image_url"`
}

type BookCreateRequest struct {
	Name          string `json:"name" validate:"required"`
	Author        string `json:"author" validate:"required"`
	YearPublished int    `json:"year_published" validate:"required"`
	BookType      int    `json:"book_type" validate:"required,oneof=1 2 3"`
	ImageURL      string `json:"image_url"`
}

type Customer struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	City string `json:"city" db:"city"`
	Age  int    `json:"age" db:"age"`
}

type CustomerCreateRequest struct {
	Name string `json:"name" validate:"required"`
	City string `json:"city" validate:"required"`
	Age  int    `json:"age" validate:"required,gte=0"`
}

type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

type User struct {
	UserID   int    `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password_hash"`
	UserRole string `json:"user_role" db:"user_role"`
}

type UserCreateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user customer manager"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
