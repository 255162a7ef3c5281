package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/handler"
	"github.com/bookloans/library-service/internal/model"
	"github.com/bookloans/library-service/pkg/auth"
	md "github.com/bookloans/library-service/pkg/middleware"
	"github.com/bookloans/library-service/pkg/validate"

	service_mocks "github.com/bookloans/library-service/internal/handler/mocks"
)

var testJWTCfg = auth.Config{Secret: "test-secret", TTL: time.Hour}

type mockServices struct {
	book     *service_mocks.MockBookService
	customer *service_mocks.MockCustomerService
	loan     *service_mocks.MockLoanService
	auth     *service_mocks.MockAuthService
}

func newTestHandler(t *testing.T) (*handler.Handler, mockServices, *echo.Echo) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)

	svc := mockServices{
		book:     service_mocks.NewMockBookService(c),
		customer: service_mocks.NewMockCustomerService(c),
		loan:     service_mocks.NewMockLoanService(c),
		auth:     service_mocks.NewMockAuthService(c),
	}
	h := handler.New(handler.Services{
		Book:     svc.book,
		Customer: svc.customer,
		Loan:     svc.loan,
		Auth:     svc.auth,
	}, testJWTCfg, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return h, svc, e
}

func TestHandler_SearchBooks(t *testing.T) {
	t.Parallel()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookService, term string)

	tests := []struct {
		name         string
		term         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "case-insensitive substring match",
			term: "rome",
			mockBehavior: func(r *service_mocks.MockBookService, term string) {
				r.EXPECT().
					SearchBooks(gomock.Any(), term).
					Return([]model.Book{
						{ID: 1, Name: "this is rome", Author: "someone", YearPublished: 1999, BookType: 1, ImageURL: "book.jpg"},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"id":1,"name":"this is rome","author":"someone","year_published":1999,"book_type":1,"image_url":"book.jpg"}]`,
			},
		},
		{
			name: "err. internal",
			term: "rome",
			mockBehavior: func(r *service_mocks.MockBookService, term string) {
				r.EXPECT().
					SearchBooks(gomock.Any(), term).
					Return(nil, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, e := newTestHandler(t)
			e.POST("/books/search", h.SearchBooks)

			tt.mockBehavior(svc.book, tt.term)

			r := httptest.NewRequest(http.MethodPost, "/books/search",
				strings.NewReader(`{"search_term":"`+tt.term+`"}`))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateLoan(t *testing.T) {
	t.Parallel()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLoanService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"cust_id":7,"book_id":10,"loan_date":"2023-01-05"}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), gomock.Any()).
					Return(model.Loan{ID: 1, CustID: 7, BookID: 10,
						LoanDate: mustDate(t, "2023-01-05"),
						DueDate:  mustDate(t, "2023-01-15"),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"cust_id":7,"book_id":10,"loan_date":"2023-01-05","due_date":"2023-01-15"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"cust_id":7,"book_id":99,"loan_date":"2023-01-05"}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), gomock.Any()).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. invalid book type",
			body: `{"cust_id":7,"book_id":10,"loan_date":"2023-01-05"}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), gomock.Any()).
					Return(model.Loan{}, errs.ErrInvalidBookType)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid book type"}`,
			},
		},
		{
			name:         "err. missing fields",
			body:         `{"book_id":10}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, e := newTestHandler(t)
			e.POST("/loans/new", h.CreateLoan)

			tt.mockBehavior(svc.loan)

			r := httptest.NewRequest(http.MethodPost, "/loans/new", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockAuthService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"username":"alice","password":"secret","role":"customer"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Register(gomock.Any(), model.UserCreateRequest{Username: "alice", Password: "secret", Role: "customer"}).
					Return(model.User{UserID: 1, Username: "alice", UserRole: "customer"}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"user_id":1,"username":"alice","user_role":"customer"}`,
			},
		},
		{
			name: "err. duplicate username",
			body: `{"username":"alice","password":"secret","role":"customer"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(model.User{}, errs.ErrConflict)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"already exists"}`,
			},
		},
		{
			name:         "err. empty password",
			body:         `{"username":"alice","role":"customer"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:         "err. role outside allowed set",
			body:         `{"username":"alice","password":"secret","role":"root"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, e := newTestHandler(t)
			e.POST("/user/register", h.Register)

			tt.mockBehavior(svc.auth)

			r := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	h, svc, e := newTestHandler(t)
	e.POST("/user/login", h.Login)

	svc.auth.EXPECT().
		Login(gomock.Any(), model.AuthRequest{Username: "alice", Password: "wrong"}).
		Return(model.AuthResponse{}, errs.ErrBadCredentials)

	r := httptest.NewRequest(http.MethodPost, "/user/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, `{"message":"invalid credentials"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Profile(t *testing.T) {
	t.Parallel()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockAuthService)

	tests := []struct {
		name         string
		profile      auth.Profile
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "manager allowed",
			profile: auth.Profile{UserID: 1, Username: "alice", Role: "manager"},
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					GetUser(gomock.Any(), 1).
					Return(model.User{UserID: 1, Username: "alice", UserRole: "manager"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"user_id":1,"username":"alice","user_role":"manager"}`,
			},
		},
		{
			name:         "plain user forbidden",
			profile:      auth.Profile{UserID: 2, Username: "bob", Role: "user"},
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"Unauthorized access."}`,
			},
		},
		{
			name:    "subject no longer exists",
			profile: auth.Profile{UserID: 3, Username: "gone", Role: "customer"},
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					GetUser(gomock.Any(), 3).
					Return(model.User{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, e := newTestHandler(t)
			e.GET("/user/profile", h.Profile, md.JwtAuthentication(testJWTCfg))

			tt.mockBehavior(svc.auth)

			token, _, err := auth.NewToken(testJWTCfg, tt.profile)
			require.NoError(t, err)

			r := httptest.NewRequest(http.MethodGet, "/user/profile", http.NoBody)
			r.Header.Set(md.AuthorizationHeader, "Bearer "+token)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Profile_NoToken(t *testing.T) {
	t.Parallel()

	h, _, e := newTestHandler(t)
	e.GET("/user/profile", h.Profile, md.JwtAuthentication(testJWTCfg))

	r := httptest.NewRequest(http.MethodGet, "/user/profile", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		h, svc, e := newTestHandler(t)
		e.POST("/loans/:id/return", h.ReturnLoan)

		returned := mustDate(t, "2023-01-20")
		item := model.Loan{ID: 5, CustID: 7, BookID: 10,
			LoanDate:   mustDate(t, "2023-01-05"),
			DueDate:    mustDate(t, "2023-01-15"),
			ReturnedOn: &returned.Time,
		}.Item(returned.Time, 0.5)
		svc.loan.EXPECT().ReturnLoan(gomock.Any(), 5).Return(item, nil)

		r := httptest.NewRequest(http.MethodPost, "/loans/5/return", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"id":5,"cust_id":7,"book_id":10,
			"loan_date":"2023-01-05","due_date":"2023-01-15","returned_on":"2023-01-20",
			"is_late":false,"loan_status":"Returned","fine":0
		}`, w.Body.String())
	})

	t.Run("already returned or missing", func(t *testing.T) {
		t.Parallel()
		h, svc, e := newTestHandler(t)
		e.POST("/loans/:id/return", h.ReturnLoan)

		svc.loan.EXPECT().ReturnLoan(gomock.Any(), 5).Return(model.LoanItem{}, errs.ErrNotFound)

		r := httptest.NewRequest(http.MethodPost, "/loans/5/return", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	var d model.Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"`+s+`"`)))
	return d
}
