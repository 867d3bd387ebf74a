// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the use case orchestrators coordinating
// validation, local persistence and MailChimp propagation.
package service

import (
	"context"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/port"
)

// Reader defines the composite interface for list and member read operations
type Reader interface {
	// GetList retrieves a single list by UID and returns the revision
	GetList(ctx context.Context, uid string) (*model.List, uint64, error)

	// GetListRevision retrieves only the revision for a given list UID
	GetListRevision(ctx context.Context, uid string) (uint64, error)

	// ListLists retrieves all stored lists
	ListLists(ctx context.Context) ([]*model.List, error)

	// GetMember retrieves a member by UID scoped to its list
	GetMember(ctx context.Context, listUID, memberUID string) (*model.Member, uint64, error)

	// ListMembers retrieves all members of a list
	ListMembers(ctx context.Context, listUID string) ([]*model.Member, error)
}

// ReaderOrchestratorOption defines a function type for setting options on the reader orchestrator
type ReaderOrchestratorOption func(*readerOrchestrator)

// WithStorageReader sets the storage reader
func WithStorageReader(reader port.Reader) ReaderOrchestratorOption {
	return func(r *readerOrchestrator) {
		r.storageReader = reader
	}
}

// readerOrchestrator orchestrates the read use cases against storage
type readerOrchestrator struct {
	storageReader port.Reader
}

// NewReaderOrchestrator creates a new reader orchestrator using the option pattern
func NewReaderOrchestrator(opts ...ReaderOrchestratorOption) Reader {
	rc := &readerOrchestrator{}
	for _, opt := range opts {
		opt(rc)
	}

	return rc
}
