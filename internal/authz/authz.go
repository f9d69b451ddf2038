// Package authz is the row ownership matrix applied before every write.
//
// The same rules are enforced by row-level security in the database;
// checking them here first turns a rejected write into a 403 with a
// useful message instead of a silent zero-row update.
//
//	| table           | read      | insert       | update    | delete |
//	| profiles        | anyone    | self         | self      | -      |
//	| solver_profiles | anyone    | self         | self      | -      |
//	| categories      | anyone    | -            | -         | -      |
//	| posts           | anyone    | author       | author    | author |
//	| responses       | anyone    | solver       | solver    | -      |
//	| messages        | recipient | unrestricted | recipient | -      |
package authz

import (
	"fmt"

	"github.com/deppfellow/askhub/internal/errs"
)

type Table string

const (
	Profiles       Table = "profiles"
	SolverProfiles Table = "solver_profiles"
	Categories     Table = "categories"
	Posts          Table = "posts"
	Responses      Table = "responses"
	Messages       Table = "messages"
)

type Action string

const (
	Read   Action = "read"
	Insert Action = "insert"
	Update Action = "update"
	Delete Action = "delete"
)

type rule int

const (
	deny rule = iota
	anyone
	owner
)

var matrix = map[Table]map[Action]rule{
	Profiles:       {Read: anyone, Insert: owner, Update: owner},
	SolverProfiles: {Read: anyone, Insert: owner, Update: owner},
	Categories:     {Read: anyone},
	Posts:          {Read: anyone, Insert: owner, Update: owner, Delete: owner},
	Responses:      {Read: anyone, Insert: owner, Update: owner},
	Messages:       {Read: owner, Insert: anyone, Update: owner},
}

// Allowed reports whether callerID may perform action on a row of table
// owned by ownerID. The owner is the profile itself, the solver profile's
// user, the post author, the responding solver or the message recipient.
// An empty callerID is an anonymous caller.
func Allowed(table Table, action Action, callerID, ownerID string) bool {
	switch matrix[table][action] {
	case anyone:
		return true
	case owner:
		return callerID != "" && callerID == ownerID
	default:
		return false
	}
}

// Check is Allowed as an error: 401 when an anonymous caller needs an
// identity, 403 otherwise.
func Check(table Table, action Action, callerID, ownerID string) error {
	if Allowed(table, action, callerID, ownerID) {
		return nil
	}
	if callerID == "" && matrix[table][action] == owner {
		return errs.NewUnauthorizedError("Authentication required", true)
	}
	return errs.NewForbiddenError(denyMessage(table, action), true)
}

func denyMessage(table Table, action Action) string {
	switch matrix[table][action] {
	case deny:
		return fmt.Sprintf("%s cannot be %s through the API", table, pastTense(action))
	}

	switch table {
	case Profiles, SolverProfiles:
		return "You can only change your own profile"
	case Posts:
		return "Only the author can change this post"
	case Responses:
		return "Only the responding solver can change this response"
	case Messages:
		return "This message is not addressed to you"
	}
	return "Forbidden"
}

func pastTense(a Action) string {
	switch a {
	case Read:
		return "read"
	case Insert:
		return "created"
	case Update:
		return "updated"
	case Delete:
		return "deleted"
	}
	return string(a)
}
