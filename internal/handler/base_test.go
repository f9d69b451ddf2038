package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string   `json:"name" validate:"required,max=5"`
	Tags []string `json:"tags"`
}

func (r *echoRequest) Validate() error { return validation.Struct(r) }

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleBindsFreshRequestEachCall(t *testing.T) {
	var seen []*echoRequest
	h := Handle(Handler{}, func(c echo.Context, req *echoRequest) (map[string]any, error) {
		seen = append(seen, req)
		return map[string]any{"name": req.Name, "tags": len(req.Tags)}, nil
	}, http.StatusCreated)

	c, rec := newContext(http.MethodPost, "/", `{"name":"ada","tags":["a","b"]}`)
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"ada","tags":2}`, rec.Body.String())

	c, rec = newContext(http.MethodPost, "/", `{"name":"bob"}`)
	require.NoError(t, h(c))
	assert.JSONEq(t, `{"name":"bob","tags":0}`, rec.Body.String())

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}

func TestHandleRejectsInvalidPayload(t *testing.T) {
	called := false
	h := Handle(Handler{}, func(c echo.Context, req *echoRequest) (string, error) {
		called = true
		return "", nil
	}, http.StatusOK)

	c, _ := newContext(http.MethodPost, "/", `{"name":"too-long-name"}`)
	httpErr := asHTTPError(t, h(c))

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleRejectsMalformedJSON(t *testing.T) {
	h := Handle(Handler{}, func(c echo.Context, req *echoRequest) (string, error) {
		return "", nil
	}, http.StatusOK)

	c, _ := newContext(http.MethodPost, "/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, asHTTPError(t, h(c)).Status)
}

func TestHandlePassesServiceErrorsThrough(t *testing.T) {
	conflict := errs.NewConflictError("taken", false, nil)
	h := Handle(Handler{}, func(c echo.Context, req *EmptyRequest) (any, error) {
		return nil, conflict
	}, http.StatusOK)

	c, _ := newContext(http.MethodGet, "/", "")
	assert.Same(t, conflict, asHTTPError(t, h(c)))
}

func TestHandleNoContent(t *testing.T) {
	h := HandleNoContent(Handler{}, func(c echo.Context, req *IDRequest) error {
		assert.Equal(t, "0b5bd9a4-6f4e-4b3c-9a51-0b1d3c7e8f10", req.ID)
		return nil
	}, http.StatusNoContent)

	c, rec := newContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("0b5bd9a4-6f4e-4b3c-9a51-0b1d3c7e8f10")

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestListPostsRequestBindsEmbeddedPaging(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/?page=2&limit=5&status=open&category=python", "")
	req := new(ListPostsRequest)

	require.NoError(t, validation.BindAndValidate(c, req))
	f := req.filter()

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, model.PostOpen, f.Status)
	assert.Equal(t, "python", f.CategorySlug)
}

func TestListPostsRequestRejectsOversizedLimit(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/?limit=500", "")
	err := validation.BindAndValidate(c, new(ListPostsRequest))
	assert.Equal(t, http.StatusBadRequest, asHTTPError(t, err).Status)
}

func TestListPostsRequestRejectsOversizedPage(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/?page=100000000000000000&limit=100", "")
	httpErr := asHTTPError(t, validation.BindAndValidate(c, new(ListPostsRequest)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "page", httpErr.Errors[0].Field)
}

func TestStringListAcceptsArrayOrCommaString(t *testing.T) {
	var fromArray StringList
	require.NoError(t, fromArray.UnmarshalJSON([]byte(`["go, rust","python"]`)))
	assert.Equal(t, StringList{"go", "rust", "python"}, fromArray)

	var fromString StringList
	require.NoError(t, fromString.UnmarshalJSON([]byte(`" go ,, sql "`)))
	assert.Equal(t, StringList{"go", "sql"}, fromString)

	var bad StringList
	assert.Error(t, bad.UnmarshalJSON([]byte(`42`)))
}
