// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/port"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mailchimp"
	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// handleIdempotencyLookupError processes errors from idempotency lookups and determines the appropriate action
// Returns true if the error was handled (caller should continue), false if it should be propagated
//
// This helper handles distributed systems challenges with NATS KV storage:
// - NotFound: Expected during idempotency checks - safe to continue
// - ServiceUnavailable: NATS/storage unavailable - fail operation to prevent duplicates
// - Other errors: Unexpected errors - propagate for investigation
func handleIdempotencyLookupError(ctx context.Context, err error, lookupType, identifier string) (bool, error) {
	var notFoundErr errs.NotFound
	var unavailableErr errs.ServiceUnavailable

	if stderrors.As(err, &notFoundErr) {
		// NotFound is expected during idempotency checks - safe to continue
		slog.DebugContext(ctx, "not found during idempotency check, will continue",
			"lookup_type", lookupType,
			"identifier", identifier)
		return true, nil
	}

	if stderrors.As(err, &unavailableErr) {
		// Storage unavailable - cannot verify idempotency safely
		// Fail operation to prevent potential duplicates
		slog.ErrorContext(ctx, "storage unavailable during idempotency check, cannot verify if entity exists",
			"error", err,
			"lookup_type", lookupType,
			"identifier", identifier)
		return false, err // Propagate ServiceUnavailable → HTTP 503 → client retry
	}

	// Unexpected error (data corruption, permission denied, etc.) - propagate
	slog.ErrorContext(ctx, "unexpected error during idempotency check",
		"error", err,
		"lookup_type", lookupType,
		"identifier", identifier)
	return false, fmt.Errorf("idempotency check failed: %w", err)
}

func isNotFound(err error) bool {
	var notFoundErr errs.NotFound
	return stderrors.As(err, &notFoundErr)
}

// Writer defines the composite interface that combines list and member writers
type Writer interface {
	ListWriter
	MemberWriter
}

// ListWriter defines the interface for list write operations
type ListWriter interface {
	// CreateList creates the list locally, propagates it to MailChimp and
	// persists the assigned MailChimp ID
	CreateList(ctx context.Context, list *model.List) (*model.List, uint64, error)

	// UpdateList merges the patch onto the stored list, propagates the change
	// to MailChimp and persists locally on remote success
	UpdateList(ctx context.Context, uid string, patch *model.ListPatch) (*model.List, uint64, error)

	// DeleteList deletes the list on MailChimp first and removes the local
	// copy only on remote success
	DeleteList(ctx context.Context, uid string) error
}

// MemberWriter defines the interface for member write operations
type MemberWriter interface {
	// CreateMember creates a list member locally and on MailChimp
	CreateMember(ctx context.Context, listUID string, member *model.Member) (*model.Member, uint64, error)

	// UpdateMember merges the patch onto the stored member, propagates the
	// change to MailChimp and persists locally on remote success
	UpdateMember(ctx context.Context, listUID, memberUID string, patch *model.MemberPatch) (*model.Member, uint64, error)

	// DeleteMember deletes the member on MailChimp first and removes the
	// local copy only on remote success
	DeleteMember(ctx context.Context, listUID, memberUID string) error
}

// WriterOrchestratorOption defines a function type for setting options on the writer orchestrator
type WriterOrchestratorOption func(*writerOrchestrator)

// WithStorageWriter sets the storage writer
func WithStorageWriter(writer port.Writer) WriterOrchestratorOption {
	return func(w *writerOrchestrator) {
		w.storageWriter = writer
	}
}

// WithWriterStorageReader sets the storage reader used by write flows
func WithWriterStorageReader(reader port.Reader) WriterOrchestratorOption {
	return func(w *writerOrchestrator) {
		w.storageReader = reader
	}
}

// WithEntityValidator sets the wire projection validator
func WithEntityValidator(validator port.EntityValidator) WriterOrchestratorOption {
	return func(w *writerOrchestrator) {
		w.validator = validator
	}
}

// WithMailChimpClient sets the MailChimp client (may be nil for mock/disabled mode)
func WithMailChimpClient(client mailchimp.ClientInterface) WriterOrchestratorOption {
	return func(w *writerOrchestrator) {
		w.mailchimpClient = client
	}
}

// writerOrchestrator orchestrates the write use cases: validation, local
// persistence and MailChimp propagation
type writerOrchestrator struct {
	storageWriter   port.Writer
	storageReader   port.Reader
	validator       port.EntityValidator
	mailchimpClient mailchimp.ClientInterface // May be nil for mock/disabled mode
}

// NewWriterOrchestrator creates a new writer orchestrator using the option pattern
func NewWriterOrchestrator(opts ...WriterOrchestratorOption) Writer {
	uc := &writerOrchestrator{}
	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// deleteKeys removes keys by getting their revision and deleting them
// This is used both for rollback scenarios and cleanup operations
func (o *writerOrchestrator) deleteKeys(ctx context.Context, keys []string, isRollback bool) {
	if len(keys) == 0 {
		return
	}

	slog.DebugContext(ctx, "deleting keys",
		"keys", keys,
		"is_rollback", isRollback,
	)

	for _, key := range keys {
		rev, errGet := o.storageWriter.GetKeyRevision(ctx, key)
		if errGet != nil {
			slog.ErrorContext(ctx, "failed to get revision for key deletion",
				"key", key,
				"error", errGet,
				"is_rollback", isRollback,
			)
			continue
		}

		err := o.storageWriter.Delete(ctx, key, rev)
		if err != nil {
			slog.ErrorContext(ctx, "failed to delete key",
				"key", key,
				"error", err,
				"is_rollback", isRollback,
			)
		} else {
			slog.DebugContext(ctx, "successfully deleted key",
				"key", key,
				"is_rollback", isRollback,
			)
		}
	}

	slog.DebugContext(ctx, "key deletion completed",
		"keys_count", len(keys),
		"is_rollback", isRollback,
	)
}

// validateWire validates the MailChimp-shaped projection of an entity
func (o *writerOrchestrator) validateWire(ctx context.Context, entity any) error {
	if o.validator == nil {
		return nil
	}

	if err := o.validator.Validate(entity); err != nil {
		slog.DebugContext(ctx, "wire projection validation failed", "error", err)
		return err
	}

	return nil
}

// notSyncedError builds the canonical error for operations that require a
// MailChimp ID which was never assigned.
func notSyncedError(listUID, memberUID string) error {
	return errs.NewNotSynced(fmt.Sprintf("MailChimp Id not found [%s]", model.IDDescription(listUID, memberUID, "", "")))
}
