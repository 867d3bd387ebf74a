// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/port"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/constants"
	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// storage implements list and member persistence on top of NATS JetStream
// key-value buckets. List entities live in their own bucket; member entities
// share a bucket with the lookup keys that enforce email uniqueness and the
// per-list membership index.
type storage struct {
	client *NATSClient
}

// NewStorage creates a storage backed by the given NATS client.
func NewStorage(client *NATSClient) port.ReaderWriter {
	return &storage{client: client}
}

// IsReady reports whether the underlying NATS connection can serve requests.
func (s *storage) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// get retrieves and unmarshals an entity from the given bucket.
func (s *storage) get(ctx context.Context, bucket, uid string, entity any) (uint64, error) {
	if uid == "" {
		return 0, errs.NewValidation("UID cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, bucket)
	if err != nil {
		slog.ErrorContext(ctx, "NATS KV bucket not available",
			"error", err,
			"bucket", bucket,
		)
		return 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	entry, err := kv.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, errs.NewNotFound(fmt.Sprintf("entity not found [%s]", uid), err)
		}
		slog.ErrorContext(ctx, "failed to get entity from NATS KV store",
			"error", err,
			"bucket", bucket,
			"key", uid,
		)
		return 0, errs.NewServiceUnavailable("failed to get entity", err)
	}

	if err := json.Unmarshal(entry.Value(), entity); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal entity",
			"error", err,
			"bucket", bucket,
			"key", uid,
		)
		return 0, errs.NewUnexpected("failed to unmarshal entity", err)
	}

	return entry.Revision(), nil
}

// put stores an entity without a revision check.
func (s *storage) put(ctx context.Context, bucket, uid string, entity any) (uint64, error) {
	if uid == "" {
		return 0, errs.NewValidation("UID cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, bucket)
	if err != nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return 0, errs.NewUnexpected("failed to marshal entity", err)
	}

	revision, err := kv.Put(ctx, uid, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to put entity into NATS KV store",
			"error", err,
			"bucket", bucket,
			"key", uid,
		)
		return 0, errs.NewServiceUnavailable("failed to store entity", err)
	}

	return revision, nil
}

// putWithRevision stores an entity only if the stored revision still matches
// the expected revision.
func (s *storage) putWithRevision(ctx context.Context, bucket, uid string, entity any, expectedRevision uint64) (uint64, error) {
	if uid == "" {
		return 0, errs.NewValidation("UID cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, bucket)
	if err != nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return 0, errs.NewUnexpected("failed to marshal entity", err)
	}

	revision, err := kv.Update(ctx, uid, data, expectedRevision)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, errs.NewNotFound(fmt.Sprintf("entity not found [%s]", uid), err)
		}
		slog.WarnContext(ctx, "failed to update entity in NATS KV store",
			"error", err,
			"bucket", bucket,
			"key", uid,
			"expected_revision", expectedRevision,
		)
		return 0, errs.NewConflict("entity has been modified by another request", err)
	}

	return revision, nil
}

// remove deletes a key only if the stored revision still matches.
func (s *storage) remove(ctx context.Context, bucket, uid string, expectedRevision uint64) error {
	if uid == "" {
		return errs.NewValidation("UID cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, bucket)
	if err != nil {
		return errs.NewServiceUnavailable("KV bucket not available", err)
	}

	err = kv.Delete(ctx, uid, jetstream.LastRevision(expectedRevision))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return errs.NewNotFound(fmt.Sprintf("entity not found [%s]", uid), err)
		}
		slog.WarnContext(ctx, "failed to delete entity from NATS KV store",
			"error", err,
			"bucket", bucket,
			"key", uid,
			"expected_revision", expectedRevision,
		)
		return errs.NewConflict("entity has been modified by another request", err)
	}

	return nil
}

// GetList retrieves a list by UID along with its revision.
func (s *storage) GetList(ctx context.Context, uid string) (*model.List, uint64, error) {
	list := &model.List{}
	revision, err := s.get(ctx, constants.KVBucketNameMailchimpLists, uid, list)
	if err != nil {
		return nil, 0, err
	}
	return list, revision, nil
}

// GetListRevision retrieves only the revision of a stored list.
func (s *storage) GetListRevision(ctx context.Context, uid string) (uint64, error) {
	list := &model.List{}
	return s.get(ctx, constants.KVBucketNameMailchimpLists, uid, list)
}

// ListLists retrieves all stored lists.
func (s *storage) ListLists(ctx context.Context) ([]*model.List, error) {
	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpLists)
	if err != nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []*model.List{}, nil
		}
		return nil, errs.NewServiceUnavailable("failed to list keys", err)
	}

	lists := make([]*model.List, 0)
	for key := range lister.Keys() {
		// lookup keys are not list entities
		if strings.Contains(key, "/") {
			continue
		}
		list, _, err := s.GetList(ctx, key)
		if err != nil {
			if errors.As(err, &errs.NotFound{}) {
				continue
			}
			return nil, err
		}
		lists = append(lists, list)
	}

	return lists, nil
}

// CreateList stores a new list entity.
func (s *storage) CreateList(ctx context.Context, list *model.List) (*model.List, uint64, error) {
	revision, err := s.put(ctx, constants.KVBucketNameMailchimpLists, list.UID, list)
	if err != nil {
		return nil, 0, err
	}
	return list, revision, nil
}

// UpdateList replaces a stored list if the revision still matches.
func (s *storage) UpdateList(ctx context.Context, uid string, list *model.List, expectedRevision uint64) (*model.List, uint64, error) {
	revision, err := s.putWithRevision(ctx, constants.KVBucketNameMailchimpLists, uid, list, expectedRevision)
	if err != nil {
		return nil, 0, err
	}
	return list, revision, nil
}

// DeleteList removes a stored list if the revision still matches.
func (s *storage) DeleteList(ctx context.Context, uid string, expectedRevision uint64) error {
	return s.remove(ctx, constants.KVBucketNameMailchimpLists, uid, expectedRevision)
}

// GetMember retrieves a member by UID along with its revision.
func (s *storage) GetMember(ctx context.Context, uid string) (*model.Member, uint64, error) {
	member := &model.Member{}
	revision, err := s.get(ctx, constants.KVBucketNameMailchimpMembers, uid, member)
	if err != nil {
		return nil, 0, err
	}
	return member, revision, nil
}

// GetMemberRevision retrieves only the revision of a stored member.
func (s *storage) GetMemberRevision(ctx context.Context, uid string) (uint64, error) {
	member := &model.Member{}
	return s.get(ctx, constants.KVBucketNameMailchimpMembers, uid, member)
}

// GetMemberByEmail resolves a member through the email constraint lookup key.
func (s *storage) GetMemberByEmail(ctx context.Context, listUID, email string) (*model.Member, uint64, error) {
	probe := &model.Member{ListUID: listUID, EmailAddress: email}
	constraintKey := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, probe.BuildIndexKey(ctx))

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return nil, 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	entry, err := kv.Get(ctx, constraintKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, 0, errs.NewNotFound("member not found for email", err)
		}
		return nil, 0, errs.NewServiceUnavailable("failed to get lookup key", err)
	}

	return s.GetMember(ctx, string(entry.Value()))
}

// ListMembers retrieves all members of a list via the membership index keys.
func (s *storage) ListMembers(ctx context.Context, listUID string) ([]*model.Member, error) {
	if listUID == "" {
		return nil, errs.NewValidation("UID cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []*model.Member{}, nil
		}
		return nil, errs.NewServiceUnavailable("failed to list keys", err)
	}

	prefix := fmt.Sprintf(constants.KVLookupMembersByListPrefix, listUID, "")
	members := make([]*model.Member, 0)
	for key := range lister.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		memberUID := strings.TrimPrefix(key, prefix)
		member, _, err := s.GetMember(ctx, memberUID)
		if err != nil {
			if errors.As(err, &errs.NotFound{}) {
				continue
			}
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// CreateMember stores a new member entity and its list membership index key.
func (s *storage) CreateMember(ctx context.Context, member *model.Member) (*model.Member, uint64, error) {
	revision, err := s.put(ctx, constants.KVBucketNameMailchimpMembers, member.UID, member)
	if err != nil {
		return nil, 0, err
	}

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return nil, 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}
	indexKey := fmt.Sprintf(constants.KVLookupMembersByListPrefix, member.ListUID, member.UID)
	if _, err := kv.Put(ctx, indexKey, []byte(member.UID)); err != nil {
		slog.ErrorContext(ctx, "failed to create member index key",
			"error", err,
			"key", indexKey,
		)
		return nil, 0, errs.NewServiceUnavailable("failed to create lookup key", err)
	}

	return member, revision, nil
}

// UpdateMember replaces a stored member if the revision still matches. The
// email address never changes, so the constraint and index keys stay intact.
func (s *storage) UpdateMember(ctx context.Context, uid string, member *model.Member, expectedRevision uint64) (*model.Member, uint64, error) {
	revision, err := s.putWithRevision(ctx, constants.KVBucketNameMailchimpMembers, uid, member, expectedRevision)
	if err != nil {
		return nil, 0, err
	}
	return member, revision, nil
}

// DeleteMember removes a stored member along with its constraint and index
// keys, freeing the email address for reuse in the list.
func (s *storage) DeleteMember(ctx context.Context, uid string, expectedRevision uint64, member *model.Member) error {
	if err := s.remove(ctx, constants.KVBucketNameMailchimpMembers, uid, expectedRevision); err != nil {
		return err
	}

	cleanup := []string{
		fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(ctx)),
		fmt.Sprintf(constants.KVLookupMembersByListPrefix, member.ListUID, uid),
	}
	for _, key := range cleanup {
		revision, err := s.GetKeyRevision(ctx, key)
		if err != nil {
			if errors.As(err, &errs.NotFound{}) {
				continue
			}
			slog.WarnContext(ctx, "failed to resolve member lookup key for cleanup",
				"error", err,
				"key", key,
			)
			continue
		}
		if err := s.Delete(ctx, key, revision); err != nil {
			slog.WarnContext(ctx, "failed to clean up member lookup key",
				"error", err,
				"key", key,
			)
		}
	}

	return nil
}

// UniqueMember reserves the email constraint key for the member. It returns
// the constraint key so the caller can roll back the reservation if a later
// step of the write fails.
func (s *storage) UniqueMember(ctx context.Context, member *model.Member) (string, error) {
	constraintKey := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, member.BuildIndexKey(ctx))

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return constraintKey, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	_, err = kv.Create(ctx, constraintKey, []byte(member.UID))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return constraintKey, errs.NewConflict("entity with same constraints already exists", err)
		}
		slog.ErrorContext(ctx, "failed to create member constraint key",
			"error", err,
			"key", constraintKey,
		)
		return constraintKey, errs.NewServiceUnavailable("failed to create lookup key", err)
	}

	return constraintKey, nil
}

// GetKeyRevision retrieves the revision of an arbitrary member-bucket key.
// Rollback keys are always member scoped: constraint keys, membership index
// keys, and member entity UIDs all live in the members bucket.
func (s *storage) GetKeyRevision(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available", err)
	}

	entry, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, errs.NewNotFound(fmt.Sprintf("key not found [%s]", key), err)
		}
		return 0, errs.NewServiceUnavailable("failed to get key", err)
	}

	return entry.Revision(), nil
}

// Delete removes an arbitrary member-bucket key. Missing keys are treated as
// already deleted so rollback stays idempotent.
func (s *storage) Delete(ctx context.Context, key string, revision uint64) error {
	if key == "" {
		return errs.NewValidation("key cannot be empty")
	}

	kv, err := s.client.KeyValueStore(ctx, constants.KVBucketNameMailchimpMembers)
	if err != nil {
		return errs.NewServiceUnavailable("KV bucket not available", err)
	}

	if err := kv.Delete(ctx, key, jetstream.LastRevision(revision)); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil
		}
		slog.WarnContext(ctx, "failed to delete key from NATS KV store",
			"error", err,
			"key", key,
		)
		return errs.NewServiceUnavailable("failed to delete key", err)
	}

	return nil
}
