package users

import (
	"github.com/tanker327/react-project-structure-best-practices/api/rest/pagination"
	"github.com/tanker327/react-project-structure-best-practices/shop/users"
)

type ListResponse struct {
	Users      []users.User    `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}
