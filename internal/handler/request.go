package handler

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/validation"
)

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// IDRequest carries a UUID path parameter.
type IDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

// PageQuery is the shared page/limit query. Zero values fall back to
// the defaults.
type PageQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// StringList accepts either a JSON array or a comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		out := StringList{}
		for _, item := range list {
			out = append(out, utils.SplitList(item)...)
		}
		*l = out
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("expected a list or a comma separated string")
	}
	*l = utils.SplitList(joined)
	return nil
}
