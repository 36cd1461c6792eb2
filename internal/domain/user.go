// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"encoding/json"
	"sort"
)

// Repository describes a repository record as returned by the hosting
// service, reduced to the attributes the lister filters on.
type Repository struct {
	FullName string `json:"full_name"`
	Archived bool   `json:"archived"`
	Private  bool   `json:"private"`
	Fork     bool   `json:"fork"`
}

// Contributor is a raw per-repository contributor record.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// User is an aggregated contributor. Profile carries the whitelist-filtered
// pass-through fields from the user-lookup endpoint; the remaining fields are
// derived during aggregation. EmailDomain and Excluded are nil when the
// corresponding configuration switch is off, and absent from the report.
type User struct {
	Login         string
	Profile       map[string]any
	Contributions int
	Repositories  map[string]int
	EmailDomain   *string
	Excluded      *bool
}

// MarshalJSON merges the pass-through profile fields with the derived ones.
// Derived fields win on a name collision.
func (u *User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Profile)+5)
	for name, value := range u.Profile {
		out[name] = value
	}
	out["login"] = u.Login
	out["contributions"] = u.Contributions
	out["repositories"] = u.Repositories
	if u.EmailDomain != nil {
		out["email_domain"] = *u.EmailDomain
	}
	if u.Excluded != nil {
		out["excluded"] = *u.Excluded
	}
	return json.Marshal(out)
}

// Table is an insertion-ordered collection of aggregated users keyed by
// login. Each login appears at most once; the order of first sighting is
// preserved and used as the tie-break when sorting.
type Table struct {
	users []*User
	index map[string]int
}

// NewTable creates an empty user table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Get returns the user for login, if present.
func (t *Table) Get(login string) (*User, bool) {
	i, ok := t.index[login]
	if !ok {
		return nil, false
	}
	return t.users[i], true
}

// Add appends a user. The login must not already be present.
func (t *Table) Add(u *User) {
	t.index[u.Login] = len(t.users)
	t.users = append(t.users, u)
}

// Len returns the number of distinct logins in the table.
func (t *Table) Len() int {
	return len(t.users)
}

// Users returns the users in discovery order.
func (t *Table) Users() []*User {
	return t.users
}

// Sorted returns the users ordered by contribution count descending.
// Ties preserve discovery order.
func (t *Table) Sorted() []*User {
	sorted := make([]*User, len(t.users))
	copy(sorted, t.users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Contributions > sorted[j].Contributions
	})
	return sorted
}
