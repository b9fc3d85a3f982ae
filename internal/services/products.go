package services

import (
	"context"
	"net/url"
	"strconv"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

const productEntity = "ProductService"

// ProductService is the catalog client. Every remote method returns
// *errors.Error on failure.
type ProductService struct {
	entity *apperrors.Entity

	getProducts   func(context.Context, ProductQuery) ([]Product, error)
	getProduct    func(context.Context, string) (*Product, error)
	createProduct func(context.Context, ProductInput) (*Product, error)
	updateProduct func(context.Context, string, ProductInput) (*Product, error)
	deleteProduct func(context.Context, string) error
}

func NewProductService(api API) *ProductService {
	c := productCalls{api: api}

	s := &ProductService{
		getProducts:   apperrors.Wrap1(productOp("getProducts"), c.getProducts),
		getProduct:    apperrors.Wrap1(productOp("getProduct"), c.getProduct),
		createProduct: apperrors.Wrap1(productOp("createProduct"), c.createProduct),
		updateProduct: apperrors.Wrap2(productOp("updateProduct"), c.updateProduct),
		deleteProduct: apperrors.WrapErr1(productOp("deleteProduct"), c.deleteProduct),
	}

	s.entity = apperrors.Instrument(apperrors.EntityDef{
		Name: productEntity,
		Operations: []apperrors.OperationDef{
			apperrors.AsyncOp("getProducts", func(ctx context.Context, args ...any) (any, error) {
				q, err := argAt[ProductQuery](args, 0, false)
				if err != nil {
					return nil, err
				}
				return c.getProducts(ctx, q)
			}),
			apperrors.AsyncOp("getProduct", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				return c.getProduct(ctx, id)
			}),
			apperrors.AsyncOp("createProduct", func(ctx context.Context, args ...any) (any, error) {
				in, err := argAt[ProductInput](args, 0, true)
				if err != nil {
					return nil, err
				}
				return c.createProduct(ctx, in)
			}),
			apperrors.AsyncOp("updateProduct", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				in, err := argAt[ProductInput](args, 1, true)
				if err != nil {
					return nil, err
				}
				return c.updateProduct(ctx, id, in)
			}),
			apperrors.AsyncOp("deleteProduct", func(ctx context.Context, args ...any) (any, error) {
				id, err := argAt[string](args, 0, true)
				if err != nil {
					return nil, err
				}
				return nil, c.deleteProduct(ctx, id)
			}),
			apperrors.SyncOp("validateProduct", func(_ context.Context, args ...any) (any, error) {
				in, err := argAt[ProductInput](args, 0, true)
				if err != nil {
					return nil, err
				}
				return nil, s.ValidateProduct(in)
			}),
		},
	})

	return s
}

func productOp(method string) apperrors.Op {
	return apperrors.Op{Entity: productEntity, Method: method}
}

// Operations returns the by-name operation table.
func (s *ProductService) Operations() *apperrors.Entity { return s.entity }

func (s *ProductService) GetProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	return s.getProducts(ctx, q)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.getProduct(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	return s.createProduct(ctx, in)
}

// UpdateProduct replaces the editable fields of a product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	return s.updateProduct(ctx, id, in)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteProduct(ctx, id)
}

// ValidateProduct checks an input locally. It is not instrumented: failures
// are the raw *validate.Error.
func (s *ProductService) ValidateProduct(in ProductInput) error {
	return validate.Struct(in)
}

type productCalls struct {
	api API
}

func (c productCalls) getProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	path := "/products"
	if qs := q.values().Encode(); qs != "" {
		path += "?" + qs
	}

	var resp productList
	if err := c.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}

	if err := validate.Struct(resp); err != nil {
		return nil, err
	}

	if err := validate.Slice(resp.Products); err != nil {
		return nil, err
	}

	return resp.Products, nil
}

func (c productCalls) getProduct(ctx context.Context, id string) (*Product, error) {
	if err := validate.Var("id", id, "required"); err != nil {
		return nil, err
	}

	var p Product
	if err := c.api.Get(ctx, "/products/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}

	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (c productCalls) createProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var p Product
	if err := c.api.Post(ctx, "/products", in, &p); err != nil {
		return nil, err
	}

	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (c productCalls) updateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	if err := validate.Var("id", id, "required"); err != nil {
		return nil, err
	}

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var p Product
	if err := c.api.Put(ctx, "/products/"+url.PathEscape(id), in, &p); err != nil {
		return nil, err
	}

	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (c productCalls) deleteProduct(ctx context.Context, id string) error {
	if err := validate.Var("id", id, "required"); err != nil {
		return err
	}

	return c.api.Delete(ctx, "/products/"+url.PathEscape(id), nil)
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}

	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}

	return v
}
