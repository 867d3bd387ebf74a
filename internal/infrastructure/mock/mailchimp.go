// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mailchimp"
)

// MailChimpCall records a single call made against the mock MailChimp client
type MailChimpCall struct {
	Operation string
	ListID    string
	MemberID  string
}

// MockMailChimpClient implements mailchimp.ClientInterface without talking to
// the MailChimp API. Remote IDs are generated locally and every call is
// recorded so tests can assert on the outbound traffic.
type MockMailChimpClient struct {
	mu     sync.Mutex
	nextID int
	calls  []MailChimpCall
	errors map[string]error // operation name -> scripted error
}

// NewMockMailChimpClient creates a new mock MailChimp client
func NewMockMailChimpClient() *MockMailChimpClient {
	return &MockMailChimpClient{
		errors: make(map[string]error),
	}
}

// SetError scripts an error for the named operation (useful for testing)
func (c *MockMailChimpClient) SetError(operation string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.errors, operation)
		return
	}
	c.errors[operation] = err
}

// Calls returns a copy of the recorded calls (useful for testing)
func (c *MockMailChimpClient) Calls() []MailChimpCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MailChimpCall(nil), c.calls...)
}

// Reset clears recorded calls and scripted errors (useful for testing)
func (c *MockMailChimpClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
	c.errors = make(map[string]error)
	c.nextID = 0
}

func (c *MockMailChimpClient) record(ctx context.Context, operation, listID, memberID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	slog.DebugContext(ctx, "mock mailchimp: recording call",
		"operation", operation,
		"list_id", listID,
		"member_id", memberID,
	)
	c.calls = append(c.calls, MailChimpCall{Operation: operation, ListID: listID, MemberID: memberID})

	return c.errors[operation]
}

func (c *MockMailChimpClient) generateID(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return fmt.Sprintf("%s-%d", prefix, c.nextID)
}

// CreateList simulates creating a list and returns a generated remote ID
func (c *MockMailChimpClient) CreateList(ctx context.Context, list *model.ListWire) (*mailchimp.ListObject, error) {
	if err := c.record(ctx, "CreateList", "", ""); err != nil {
		return nil, err
	}

	name := ""
	if list.Name != nil {
		name = *list.Name
	}
	return &mailchimp.ListObject{
		ID:   c.generateID("mc-list"),
		Name: name,
	}, nil
}

// UpdateList simulates updating a list
func (c *MockMailChimpClient) UpdateList(ctx context.Context, mailChimpID string, list *model.ListWire) (*mailchimp.ListObject, error) {
	if err := c.record(ctx, "UpdateList", mailChimpID, ""); err != nil {
		return nil, err
	}

	name := ""
	if list.Name != nil {
		name = *list.Name
	}
	return &mailchimp.ListObject{
		ID:   mailChimpID,
		Name: name,
	}, nil
}

// DeleteList simulates deleting a list
func (c *MockMailChimpClient) DeleteList(ctx context.Context, mailChimpID string) error {
	return c.record(ctx, "DeleteList", mailChimpID, "")
}

// CreateMember simulates creating a list member and returns a generated remote ID
func (c *MockMailChimpClient) CreateMember(ctx context.Context, mailChimpListID string, member *model.MemberWire) (*mailchimp.MemberObject, error) {
	if err := c.record(ctx, "CreateMember", mailChimpListID, ""); err != nil {
		return nil, err
	}

	email := ""
	if member.EmailAddress != nil {
		email = *member.EmailAddress
	}
	status := ""
	if member.Status != nil {
		status = *member.Status
	}
	return &mailchimp.MemberObject{
		ID:            c.generateID("mc-member"),
		EmailAddress:  email,
		EmailID:       c.generateID("email"),
		UniqueEmailID: c.generateID("unique"),
		Status:        status,
		ListID:        mailChimpListID,
	}, nil
}

// UpdateMember simulates updating a list member
func (c *MockMailChimpClient) UpdateMember(ctx context.Context, mailChimpListID, mailChimpMemberID string, member *model.MemberWire) (*mailchimp.MemberObject, error) {
	if err := c.record(ctx, "UpdateMember", mailChimpListID, mailChimpMemberID); err != nil {
		return nil, err
	}

	email := ""
	if member.EmailAddress != nil {
		email = *member.EmailAddress
	}
	status := ""
	if member.Status != nil {
		status = *member.Status
	}
	return &mailchimp.MemberObject{
		ID:           mailChimpMemberID,
		EmailAddress: email,
		Status:       status,
		ListID:       mailChimpListID,
	}, nil
}

// DeleteMember simulates deleting a list member
func (c *MockMailChimpClient) DeleteMember(ctx context.Context, mailChimpListID, mailChimpMemberID string) error {
	return c.record(ctx, "DeleteMember", mailChimpListID, mailChimpMemberID)
}

// IsReady always reports ready
func (c *MockMailChimpClient) IsReady(ctx context.Context) error {
	return nil
}
