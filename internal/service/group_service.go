package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type groupRepository interface {
	List(ctx context.Context, tenantID string) ([]models.Group, error)
	FindByID(ctx context.Context, tenantID, id string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Rename(ctx context.Context, tenantID, id, name string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type groupMembershipRepository interface {
	SetGroupMembers(ctx context.Context, tenantID, groupID string, memberIDs []string) error
}

// GroupService manages student groups and their membership.
type GroupService struct {
	repo      groupRepository
	students  groupMembershipRepository
	cache     snapshotInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGroupService constructs the service.
func NewGroupService(repo groupRepository, students groupMembershipRepository, cache snapshotInvalidator, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{repo: repo, students: students, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// GroupRequest carries the group name for create and rename.
type GroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// MembersRequest lists the student IDs that make up a group.
type MembersRequest struct {
	MemberIDs []string `json:"members"`
}

// List returns the tenant's groups.
func (s *GroupService) List(ctx context.Context, tenantID string) ([]models.Group, error) {
	groups, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Create adds a group with a generated millisecond-stamped ID.
func (s *GroupService) Create(ctx context.Context, tenantID string, req GroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	group := &models.Group{
		TenantID: tenantID,
		ID:       fmt.Sprintf("_group%d", s.now().UnixMilli()),
		Name:     strings.TrimSpace(req.Name),
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("group created", zap.String("tenant_id", tenantID), zap.String("group_id", group.ID))
	return group, nil
}

// Rename changes a group's display name.
func (s *GroupService) Rename(ctx context.Context, tenantID, id string, req GroupRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	if err := s.repo.Rename(ctx, tenantID, id, strings.TrimSpace(req.Name)); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rename group")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// Delete removes a group; its members fall back to ungrouped.
func (s *GroupService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindByID(ctx, tenantID, id); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("group deleted", zap.String("tenant_id", tenantID), zap.String("group_id", id))
	return nil
}

// SetMembers replaces the group's membership with the listed students.
func (s *GroupService) SetMembers(ctx context.Context, tenantID, id string, req MembersRequest) error {
	if _, err := s.repo.FindByID(ctx, tenantID, id); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	if err := s.students.SetGroupMembers(ctx, tenantID, id, req.MemberIDs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set group members")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *GroupService) invalidate(ctx context.Context, tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
}
