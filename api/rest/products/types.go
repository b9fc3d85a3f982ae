package products

import (
	"github.com/tanker327/react-project-structure-best-practices/api/rest/pagination"
	"github.com/tanker327/react-project-structure-best-practices/shop/products"
)

// ListResponse is one page of the catalog
type ListResponse struct {
	Products   []products.Product `json:"products"`
	Pagination pagination.Meta    `json:"pagination"`
}
