// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides in-memory implementations of the storage and
// MailChimp client interfaces for local development and testing.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/port"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/constants"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/utils"
)

// Global mock repository instance to share data between all repositories
var (
	globalMockRepo     *MockRepository
	globalMockRepoOnce = &sync.Once{}
)

// MockRepository provides a mock implementation of all repository interfaces for testing
type MockRepository struct {
	lists             map[string]*model.List
	listRevisions     map[string]uint64
	members           map[string]*model.Member
	memberRevisions   map[string]uint64
	memberConstraints map[string]string // constraint key -> member UID
	mu                sync.RWMutex      // Protect concurrent access to maps
}

// NewMockRepository creates a new mock repository with sample data
func NewMockRepository() *MockRepository {

	globalMockRepoOnce.Do(func() {
		now := time.Now()

		mock := &MockRepository{
			lists:             make(map[string]*model.List),
			listRevisions:     make(map[string]uint64),
			members:           make(map[string]*model.Member),
			memberRevisions:   make(map[string]uint64),
			memberConstraints: make(map[string]string),
		}

		// Add sample data for testing
		sampleLists := []*model.List{
			{
				UID:                "list-1",
				MailChimpID:        "mc-list-1",
				Name:               "Product Updates",
				PermissionReminder: "You subscribed to product updates on our website.",
				EmailTypeOption:    utils.BoolPtr(true),
				Contact: model.ListContact{
					Company:  "Sample Co",
					Address1: "675 Ponce de Leon Ave NE",
					City:     "Atlanta",
					State:    "GA",
					Zip:      "30308",
					Country:  "US",
				},
				CampaignDefaults: model.ListCampaignDefaults{
					FromName:  "Sample Co",
					FromEmail: "updates@sample.example",
					Subject:   "Product Updates",
					Language:  "en",
				},
				Visibility: utils.StringPtr(constants.ListVisibilityPublic),
				CreatedAt:  now.Add(-24 * time.Hour),
				UpdatedAt:  now,
			},
			{
				UID:                "list-2",
				Name:               "Beta Testers",
				PermissionReminder: "You signed up for the beta program.",
				EmailTypeOption:    utils.BoolPtr(false),
				Contact: model.ListContact{
					Company:  "Sample Co",
					Address1: "675 Ponce de Leon Ave NE",
					City:     "Atlanta",
					State:    "GA",
					Zip:      "30308",
					Country:  "US",
				},
				CampaignDefaults: model.ListCampaignDefaults{
					FromName:  "Beta Team",
					FromEmail: "beta@sample.example",
					Subject:   "Beta News",
					Language:  "en",
				},
				CreatedAt: now.Add(-12 * time.Hour),
				UpdatedAt: now.Add(-1 * time.Hour),
			},
		}

		for _, list := range sampleLists {
			mock.lists[list.UID] = list
			mock.listRevisions[list.UID] = 1
		}

		sampleMembers := []*model.Member{
			{
				UID:          "member-1",
				ListUID:      "list-1",
				MailChimpID:  "mc-member-1",
				EmailAddress: "jordan@sample.example",
				Status:       constants.MemberStatusSubscribed,
				EmailType:    utils.StringPtr(constants.EmailTypeHTML),
				CreatedAt:    now.Add(-18 * time.Hour),
				UpdatedAt:    now.Add(-2 * time.Hour),
			},
		}

		for _, member := range sampleMembers {
			mock.members[member.UID] = member
			mock.memberRevisions[member.UID] = 1
			key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(context.Background()))
			mock.memberConstraints[key] = member.UID
		}

		globalMockRepo = mock
	})

	return globalMockRepo
}

// NewStorage returns the shared mock repository as a port.ReaderWriter.
func NewStorage() port.ReaderWriter {
	return NewMockRepository()
}

// IsReady always reports ready.
func (m *MockRepository) IsReady(ctx context.Context) error {
	return nil
}

// ================== list reader implementation ==================

// GetList retrieves a single list by UID and returns its revision
func (m *MockRepository) GetList(ctx context.Context, uid string) (*model.List, uint64, error) {
	slog.DebugContext(ctx, "mock storage: getting list", "list_uid", uid)

	m.mu.RLock()
	defer m.mu.RUnlock()

	list, exists := m.lists[uid]
	if !exists {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("list with UID %s not found", uid))
	}

	return copyList(list), m.listRevisions[uid], nil
}

// GetListRevision retrieves only the revision for a given list UID
func (m *MockRepository) GetListRevision(ctx context.Context, uid string) (uint64, error) {
	slog.DebugContext(ctx, "mock storage: getting list revision", "list_uid", uid)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if rev, exists := m.listRevisions[uid]; exists {
		return rev, nil
	}

	return 0, errors.NewNotFound(fmt.Sprintf("list with UID %s not found", uid))
}

// ListLists retrieves all stored lists
func (m *MockRepository) ListLists(ctx context.Context) ([]*model.List, error) {
	slog.DebugContext(ctx, "mock storage: listing lists")

	m.mu.RLock()
	defer m.mu.RUnlock()

	lists := make([]*model.List, 0, len(m.lists))
	for _, list := range m.lists {
		lists = append(lists, copyList(list))
	}

	return lists, nil
}

// ================== list writer implementation ==================

// CreateList creates a new list in the mock storage
func (m *MockRepository) CreateList(ctx context.Context, list *model.List) (*model.List, uint64, error) {
	slog.DebugContext(ctx, "mock storage: creating list", "list_uid", list.UID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.lists[list.UID]; exists {
		return nil, 0, errors.NewConflict(fmt.Sprintf("list with UID %s already exists", list.UID))
	}

	stored := copyList(list)
	m.lists[list.UID] = stored
	m.listRevisions[list.UID] = 1

	return copyList(stored), 1, nil
}

// UpdateList updates an existing list with revision checking
func (m *MockRepository) UpdateList(ctx context.Context, uid string, list *model.List, expectedRevision uint64) (*model.List, uint64, error) {
	slog.DebugContext(ctx, "mock storage: updating list", "list_uid", uid, "expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.lists[uid]
	if !exists {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("list with UID %s not found", uid))
	}

	currentRevision := m.listRevisions[uid]
	if currentRevision != expectedRevision {
		return nil, 0, errors.NewConflict(fmt.Sprintf("revision mismatch: expected %d, got %d", expectedRevision, currentRevision))
	}

	list.UID = uid
	list.CreatedAt = existing.CreatedAt

	stored := copyList(list)
	m.lists[uid] = stored
	newRevision := currentRevision + 1
	m.listRevisions[uid] = newRevision

	return copyList(stored), newRevision, nil
}

// DeleteList deletes a list with revision checking
func (m *MockRepository) DeleteList(ctx context.Context, uid string, expectedRevision uint64) error {
	slog.DebugContext(ctx, "mock storage: deleting list", "list_uid", uid, "expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.lists[uid]; !exists {
		return errors.NewNotFound(fmt.Sprintf("list with UID %s not found", uid))
	}

	currentRevision := m.listRevisions[uid]
	if currentRevision != expectedRevision {
		return errors.NewConflict(fmt.Sprintf("revision mismatch: expected %d, got %d", expectedRevision, currentRevision))
	}

	delete(m.lists, uid)
	delete(m.listRevisions, uid)

	return nil
}

// ================== member reader implementation ==================

// GetMember retrieves a single member by UID and returns its revision
func (m *MockRepository) GetMember(ctx context.Context, uid string) (*model.Member, uint64, error) {
	slog.DebugContext(ctx, "mock storage: getting member", "member_uid", uid)

	m.mu.RLock()
	defer m.mu.RUnlock()

	member, exists := m.members[uid]
	if !exists {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("member with UID %s not found", uid))
	}

	return copyMember(member), m.memberRevisions[uid], nil
}

// GetMemberRevision retrieves only the revision for a given member UID
func (m *MockRepository) GetMemberRevision(ctx context.Context, uid string) (uint64, error) {
	slog.DebugContext(ctx, "mock storage: getting member revision", "member_uid", uid)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if rev, exists := m.memberRevisions[uid]; exists {
		return rev, nil
	}

	return 0, errors.NewNotFound(fmt.Sprintf("member with UID %s not found", uid))
}

// GetMemberByEmail resolves a member through the email constraint lookup
func (m *MockRepository) GetMemberByEmail(ctx context.Context, listUID, email string) (*model.Member, uint64, error) {
	probe := &model.Member{ListUID: listUID, EmailAddress: email}
	key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, probe.BuildIndexKey(ctx))

	m.mu.RLock()
	defer m.mu.RUnlock()

	uid, exists := m.memberConstraints[key]
	if !exists {
		return nil, 0, errors.NewNotFound("member not found for email")
	}

	member, exists := m.members[uid]
	if !exists {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("member with UID %s not found", uid))
	}

	return copyMember(member), m.memberRevisions[uid], nil
}

// ListMembers retrieves all members of a list
func (m *MockRepository) ListMembers(ctx context.Context, listUID string) ([]*model.Member, error) {
	slog.DebugContext(ctx, "mock storage: listing members", "list_uid", listUID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	members := make([]*model.Member, 0)
	for _, member := range m.members {
		if member.ListUID == listUID {
			members = append(members, copyMember(member))
		}
	}

	return members, nil
}

// ================== member writer implementation ==================

// CreateMember creates a new member in the mock storage
func (m *MockRepository) CreateMember(ctx context.Context, member *model.Member) (*model.Member, uint64, error) {
	slog.DebugContext(ctx, "mock storage: creating member", "member_uid", member.UID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.members[member.UID]; exists {
		return nil, 0, errors.NewConflict(fmt.Sprintf("member with UID %s already exists", member.UID))
	}

	stored := copyMember(member)
	m.members[member.UID] = stored
	m.memberRevisions[member.UID] = 1

	return copyMember(stored), 1, nil
}

// UpdateMember updates an existing member with revision checking
func (m *MockRepository) UpdateMember(ctx context.Context, uid string, member *model.Member, expectedRevision uint64) (*model.Member, uint64, error) {
	slog.DebugContext(ctx, "mock storage: updating member", "member_uid", uid, "expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.members[uid]
	if !exists {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("member with UID %s not found", uid))
	}

	currentRevision := m.memberRevisions[uid]
	if currentRevision != expectedRevision {
		return nil, 0, errors.NewConflict(fmt.Sprintf("revision mismatch: expected %d, got %d", expectedRevision, currentRevision))
	}

	member.UID = uid
	member.CreatedAt = existing.CreatedAt

	stored := copyMember(member)
	m.members[uid] = stored
	newRevision := currentRevision + 1
	m.memberRevisions[uid] = newRevision

	return copyMember(stored), newRevision, nil
}

// DeleteMember deletes a member with revision checking and removes its
// email constraint so the address can be used again
func (m *MockRepository) DeleteMember(ctx context.Context, uid string, expectedRevision uint64, member *model.Member) error {
	slog.DebugContext(ctx, "mock storage: deleting member", "member_uid", uid, "expected_revision", expectedRevision)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.members[uid]; !exists {
		return errors.NewNotFound(fmt.Sprintf("member with UID %s not found", uid))
	}

	currentRevision := m.memberRevisions[uid]
	if currentRevision != expectedRevision {
		return errors.NewConflict(fmt.Sprintf("revision mismatch: expected %d, got %d", expectedRevision, currentRevision))
	}

	key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(ctx))

	delete(m.members, uid)
	delete(m.memberRevisions, uid)
	delete(m.memberConstraints, key)

	return nil
}

// UniqueMember reserves the email constraint key for the member
func (m *MockRepository) UniqueMember(ctx context.Context, member *model.Member) (string, error) {
	key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(ctx))

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.memberConstraints[key]; exists {
		return key, errors.NewConflict("entity with same constraints already exists")
	}

	m.memberConstraints[key] = member.UID
	return key, nil
}

// ================== base writer implementation ==================

// GetKeyRevision retrieves the revision for a given key (used for cleanup operations)
func (m *MockRepository) GetKeyRevision(ctx context.Context, key string) (uint64, error) {
	slog.DebugContext(ctx, "mock get key revision", "key", key)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if strings.HasPrefix(key, "lookup/") {
		if _, exists := m.memberConstraints[key]; !exists {
			return 0, errors.NewNotFound(fmt.Sprintf("key not found [%s]", key))
		}
		return 1, nil
	}
	if rev, exists := m.memberRevisions[key]; exists {
		return rev, nil
	}

	return 0, errors.NewNotFound(fmt.Sprintf("key not found [%s]", key))
}

// Delete removes a key with the given revision (used for cleanup and rollback)
func (m *MockRepository) Delete(ctx context.Context, key string, revision uint64) error {
	slog.DebugContext(ctx, "mock delete key", "key", key, "revision", revision)

	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.HasPrefix(key, "lookup/") {
		delete(m.memberConstraints, key)
		return nil
	}

	delete(m.members, key)
	delete(m.memberRevisions, key)

	return nil
}

// ================== test helpers ==================

// AddList adds a list to the mock repository (useful for testing)
func (m *MockRepository) AddList(list *model.List) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[list.UID] = copyList(list)
	m.listRevisions[list.UID] = 1
}

// AddMember adds a member with its constraint key to the mock repository (useful for testing)
func (m *MockRepository) AddMember(member *model.Member) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.members[member.UID] = copyMember(member)
	m.memberRevisions[member.UID] = 1
	key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(context.Background()))
	m.memberConstraints[key] = member.UID
}

// GetListCount returns the number of stored lists (useful for testing)
func (m *MockRepository) GetListCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lists)
}

// GetMemberCount returns the number of stored members (useful for testing)
func (m *MockRepository) GetMemberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.members)
}

// HasConstraint reports whether a constraint key is currently reserved (useful for testing)
func (m *MockRepository) HasConstraint(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.memberConstraints[key]
	return exists
}

// ClearAll clears all mock data (useful for testing)
func (m *MockRepository) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists = make(map[string]*model.List)
	m.listRevisions = make(map[string]uint64)
	m.members = make(map[string]*model.Member)
	m.memberRevisions = make(map[string]uint64)
	m.memberConstraints = make(map[string]string)
}

func copyList(list *model.List) *model.List {
	listCopy := *list
	if list.UseArchiveBar != nil {
		listCopy.UseArchiveBar = utils.BoolPtr(*list.UseArchiveBar)
	}
	if list.NotifyOnSubscribe != nil {
		listCopy.NotifyOnSubscribe = utils.StringPtr(*list.NotifyOnSubscribe)
	}
	if list.NotifyOnUnsubscribe != nil {
		listCopy.NotifyOnUnsubscribe = utils.StringPtr(*list.NotifyOnUnsubscribe)
	}
	if list.Visibility != nil {
		listCopy.Visibility = utils.StringPtr(*list.Visibility)
	}
	if list.DoubleOptin != nil {
		listCopy.DoubleOptin = utils.BoolPtr(*list.DoubleOptin)
	}
	if list.MarketingPermissions != nil {
		listCopy.MarketingPermissions = utils.BoolPtr(*list.MarketingPermissions)
	}
	if list.Contact.Address2 != nil {
		listCopy.Contact.Address2 = utils.StringPtr(*list.Contact.Address2)
	}
	if list.Contact.Phone != nil {
		listCopy.Contact.Phone = utils.StringPtr(*list.Contact.Phone)
	}
	return &listCopy
}

func copyMember(member *model.Member) *model.Member {
	memberCopy := *member
	if member.EmailType != nil {
		memberCopy.EmailType = utils.StringPtr(*member.EmailType)
	}
	if member.Language != nil {
		memberCopy.Language = utils.StringPtr(*member.Language)
	}
	if member.VIP != nil {
		memberCopy.VIP = utils.BoolPtr(*member.VIP)
	}
	if member.Location != nil {
		location := *member.Location
		memberCopy.Location = &location
	}
	if member.MarketingPermissions != nil {
		memberCopy.MarketingPermissions = append([]model.MemberMarketingPermission(nil), member.MarketingPermissions...)
	}
	if member.IPSignup != nil {
		memberCopy.IPSignup = utils.StringPtr(*member.IPSignup)
	}
	if member.TimestampSignup != nil {
		memberCopy.TimestampSignup = utils.StringPtr(*member.TimestampSignup)
	}
	if member.IPOpt != nil {
		memberCopy.IPOpt = utils.StringPtr(*member.IPOpt)
	}
	if member.TimestampOpt != nil {
		memberCopy.TimestampOpt = utils.StringPtr(*member.TimestampOpt)
	}
	if member.Tags != nil {
		memberCopy.Tags = append([]string(nil), member.Tags...)
	}
	if member.MemberRating != nil {
		rating := *member.MemberRating
		memberCopy.MemberRating = &rating
	}
	return &memberCopy
}
