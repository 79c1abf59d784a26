// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers, including an in-memory
// fake of the data store gateway for state-based tests.
package testutil

import (
	"context"
	"sync"

	"github.com/sciportal/portal-datastore/internal/datastore"
)

// DefaultPermissions mirrors the vocabulary a data store typically declares.
var DefaultPermissions = map[string]int{
	"null":       1000,
	"read":       1050,
	"write":      1120,
	"own":        1200,
	"inherit":    9999,
	"no_inherit": 9998,
}

// FakeGateway is an in-memory datastore.Gateway holding backend state the
// way the real data store would: users, collections, data objects and per
// path ACLs. It lets tests assert terminal backend state after idempotent
// or multi-step operations, which call-expectation mocks cannot do.
//
// The zero value is not usable; construct with NewFakeGateway.
type FakeGateway struct {
	mu sync.Mutex

	Zone        string
	Users       map[string]datastore.User
	Collections map[string]bool
	DataObjects map[string]bool
	// Accesses maps path -> principal -> permission. The empty principal
	// holds the collection-level default/inherit grant.
	Accesses    map[string]map[string]string
	Permissions map[string]int

	// failures maps a method name to an error forced on its next calls.
	failures map[string]error

	// Calls records gateway method names in invocation order.
	Calls []string
}

// NewFakeGateway returns an empty fake backend for the zone.
func NewFakeGateway(zone string) *FakeGateway {
	return &FakeGateway{
		Zone:        zone,
		Users:       map[string]datastore.User{},
		Collections: map[string]bool{},
		DataObjects: map[string]bool{},
		Accesses:    map[string]map[string]string{},
		Permissions: DefaultPermissions,
		failures:    map[string]error{},
	}
}

// FailWith forces the named gateway method to fail with err until cleared
// with a nil err.
func (f *FakeGateway) FailWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

func (f *FakeGateway) record(method string) error {
	f.Calls = append(f.Calls, method)
	return f.failures[method]
}

func (f *FakeGateway) CollectionExists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CollectionExists"); err != nil {
		return false, err
	}
	return f.Collections[path], nil
}

func (f *FakeGateway) DataObjectExists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DataObjectExists"); err != nil {
		return false, err
	}
	return f.DataObjects[path], nil
}

func (f *FakeGateway) GetUser(ctx context.Context, username string) (*datastore.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetUser"); err != nil {
		return nil, err
	}

	user, ok := f.Users[username]
	if !ok {
		return nil, datastore.NewUserNotFoundError(username)
	}
	return &user, nil
}

func (f *FakeGateway) CreateUser(ctx context.Context, username string, userType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateUser"); err != nil {
		return err
	}

	if _, ok := f.Users[username]; ok {
		return datastore.NewUserConflictError(username)
	}

	f.Users[username] = datastore.User{Name: username, Zone: f.Zone, Type: userType}
	return nil
}

func (f *FakeGateway) RemoveUser(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveUser"); err != nil {
		return err
	}

	if _, ok := f.Users[username]; !ok {
		return datastore.NewUserNotFoundError(username)
	}

	delete(f.Users, username)
	return nil
}

func (f *FakeGateway) ModifyUser(ctx context.Context, username string, attribute string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ModifyUser"); err != nil {
		return err
	}

	if _, ok := f.Users[username]; !ok {
		return datastore.NewUserNotFoundError(username)
	}
	return nil
}

func (f *FakeGateway) CreateCollection(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCollection"); err != nil {
		return err
	}

	f.Collections[path] = true
	return nil
}

func (f *FakeGateway) RemoveCollection(ctx context.Context, path string, recurse bool, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveCollection"); err != nil {
		return err
	}

	if !f.Collections[path] {
		return datastore.NewPathNotFoundError(path)
	}

	delete(f.Collections, path)
	delete(f.Accesses, path)
	return nil
}

func (f *FakeGateway) ListAccesses(ctx context.Context, path string) ([]datastore.Access, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListAccesses"); err != nil {
		return nil, err
	}

	if !f.Collections[path] && !f.DataObjects[path] {
		return nil, datastore.NewPathNotFoundError(path)
	}

	var accesses []datastore.Access
	for principal, permission := range f.Accesses[path] {
		accesses = append(accesses, datastore.Access{
			Path:       path,
			Username:   principal,
			Zone:       f.Zone,
			Permission: permission,
		})
	}
	return accesses, nil
}

func (f *FakeGateway) SetAccess(ctx context.Context, access datastore.Access) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetAccess"); err != nil {
		return err
	}

	if !f.Collections[access.Path] && !f.DataObjects[access.Path] {
		return datastore.NewPathNotFoundError(access.Path)
	}

	if _, ok := f.Permissions[access.Permission]; !ok {
		return datastore.NewBackendError(nil)
	}

	grants, ok := f.Accesses[access.Path]
	if !ok {
		grants = map[string]string{}
		f.Accesses[access.Path] = grants
	}
	grants[access.Username] = access.Permission
	return nil
}

func (f *FakeGateway) AvailablePermissions(ctx context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AvailablePermissions"); err != nil {
		return nil, err
	}

	vocab := make(map[string]int, len(f.Permissions))
	for name, token := range f.Permissions {
		vocab[name] = token
	}
	return vocab, nil
}

// Permission returns the grant recorded for the principal on the path, or
// the empty string when none is present.
func (f *FakeGateway) Permission(path string, principal string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Accesses[path][principal]
}

// CallCount returns the number of recorded calls to the named method.
func (f *FakeGateway) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.Calls {
		if call == method {
			n++
		}
	}
	return n
}
