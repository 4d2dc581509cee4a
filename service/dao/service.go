package dao

import (
	"context"

	"github.com/viant/comets/model/types"
)

// Service loads and saves a document kind. Load returns row-level issues
// next to the decoded value; block-level problems are returned as error.
type Service[T any] interface {
	Load(ctx context.Context, URL string) (*T, types.Issues, error)

	Save(ctx context.Context, t *T, URL string) error
}
