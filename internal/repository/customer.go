package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookloans/library-service/internal/errs"
	"github.com/bookloans/library-service/internal/model"
)

func (r *repository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	query, args, err := qb.Select("id", "name", "city", "age").
		From(customersTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) GetCustomer(ctx context.Context, id int) (model.Customer, error) {
	query, args, err := qb.Select("id", "name", "city", "age").
		From(customersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}

	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, errs.ErrNotFound
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) CreateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	query, args, err := qb.Insert(customersTableName).
		Columns("name", "city", "age").
		Values(customer.Name, customer.City, customer.Age).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}

	var created model.Customer
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateCustomer", zap.String("q", query), zap.Any("args", args))
		return model.Customer{}, err
	}
	return created, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, customer model.Customer) error {
	query, args, err := qb.Update(customersTableName).
		Set("name", customer.Name).
		Set("city", customer.City).
		Set("age", customer.Age).
		Where(sq.Eq{"id": customer.ID}).
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

func (r *repository) DeleteCustomer(ctx context.Context, id int) error {
	query, args, err := qb.Delete(customersTableName).
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

func (r *repository) SearchCustomers(ctx context.Context, term string) ([]model.Customer, error) {
	query, args, err := qb.Select("id", "name", "city", "age").
		From(customersTableName).
		Where(sq.ILike{"name": fmt.Sprintf("%%%s%%", term)}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, err
	}
	return customers, nil
}
