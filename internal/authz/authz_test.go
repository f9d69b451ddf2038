package authz

import (
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/askhub/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	alice = "user_alice"
	bob   = "user_bob"
)

func TestMatrix(t *testing.T) {
	tests := []struct {
		table  Table
		action Action
		caller string
		owner  string
		want   bool
	}{
		{Profiles, Read, "", alice, true},
		{Profiles, Insert, alice, alice, true},
		{Profiles, Insert, bob, alice, false},
		{Profiles, Update, alice, alice, true},
		{Profiles, Update, bob, alice, false},
		{Profiles, Delete, alice, alice, false},

		{SolverProfiles, Read, bob, alice, true},
		{SolverProfiles, Insert, alice, alice, true},
		{SolverProfiles, Update, bob, alice, false},
		{SolverProfiles, Delete, alice, alice, false},

		{Categories, Read, "", "", true},
		{Categories, Insert, alice, alice, false},
		{Categories, Update, alice, "", false},
		{Categories, Delete, alice, "", false},

		{Posts, Read, "", alice, true},
		{Posts, Insert, alice, alice, true},
		{Posts, Insert, bob, alice, false},
		{Posts, Update, alice, alice, true},
		{Posts, Update, bob, alice, false},
		{Posts, Delete, alice, alice, true},
		{Posts, Delete, bob, alice, false},

		{Responses, Read, "", bob, true},
		{Responses, Insert, bob, bob, true},
		{Responses, Insert, alice, bob, false},
		{Responses, Update, bob, bob, true},
		{Responses, Update, alice, bob, false},
		{Responses, Delete, bob, bob, false},

		{Messages, Read, alice, alice, true},
		{Messages, Read, bob, alice, false},
		{Messages, Read, "", alice, false},
		{Messages, Insert, "", alice, true},
		{Messages, Insert, bob, alice, true},
		{Messages, Update, alice, alice, true},
		{Messages, Update, bob, alice, false},
		{Messages, Delete, alice, alice, false},

		{Profiles, Update, "", "", false},
		{Table("payments"), Read, alice, alice, false},
	}

	for _, tt := range tests {
		name := string(tt.table) + "/" + string(tt.action) + "/" + tt.caller
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.table, tt.action, tt.caller, tt.owner))
		})
	}
}

func TestCheckStatus(t *testing.T) {
	var httpErr *errs.HTTPError

	err := Check(Posts, Update, "", alice)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)

	err = Check(Posts, Update, bob, alice)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "Only the author can change this post", httpErr.Message)

	err = Check(Categories, Insert, alice, "")
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "categories cannot be created through the API", httpErr.Message)

	assert.NoError(t, Check(Posts, Delete, alice, alice))
	assert.NoError(t, Check(Messages, Insert, "", bob))
}
