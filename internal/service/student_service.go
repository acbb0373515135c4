package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, tenantID string) ([]models.Student, error)
	FindByID(ctx context.Context, tenantID, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, tenantID, id, name, groupID string) error
	Delete(ctx context.Context, tenantID, id string) error
	ReplaceAll(ctx context.Context, tenantID string, students []models.Student) error
}

// StudentService manages the roster. Point balances are read-only here; only
// the LedgerService mutates them.
type StudentService struct {
	repo      studentRepository
	cache     snapshotInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(repo studentRepository, cache snapshotInvalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateStudentRequest describes the add-student payload. The ID is the
// caller's student number, unique per tenant.
type CreateStudentRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	GroupID string `json:"group"`
}

// UpdateStudentRequest describes the edit payload.
type UpdateStudentRequest struct {
	Name    string `json:"name" validate:"required"`
	GroupID string `json:"group"`
}

// List returns the tenant's students.
func (s *StudentService) List(ctx context.Context, tenantID string) ([]models.Student, error) {
	students, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, tenantID, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create adds a student with a zeroed ledger.
func (s *StudentService) Create(ctx context.Context, tenantID string, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		TenantID: tenantID,
		ID:       strings.TrimSpace(req.ID),
		Name:     strings.TrimSpace(req.Name),
		GroupID:  req.GroupID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student id already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("student created", zap.String("tenant_id", tenantID), zap.String("student_id", student.ID))
	return student, nil
}

// Update changes a student's name and group assignment.
func (s *StudentService) Update(ctx context.Context, tenantID, id string, req UpdateStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if err := s.repo.Update(ctx, tenantID, id, strings.TrimSpace(req.Name), req.GroupID); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// Delete removes a student. Audit records referencing the student remain.
func (s *StudentService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("student deleted", zap.String("tenant_id", tenantID), zap.String("student_id", id))
	return nil
}

// Import replaces the tenant's roster with the supplied rows. Lifetime earned
// falls back to the balance when the sheet omits it, so a plain name/points
// import still yields sane counters.
func (s *StudentService) Import(ctx context.Context, tenantID string, rows []models.StudentImport) (int, error) {
	if len(rows) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "import payload is empty")
	}
	students := make([]models.Student, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if err := s.validator.Struct(row); err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import row")
		}
		if _, dup := seen[row.ID]; dup {
			return 0, appErrors.Clone(appErrors.ErrValidation, "duplicate student id in import: "+row.ID)
		}
		seen[row.ID] = struct{}{}

		earned := row.TotalEarned
		if earned == 0 && row.Points > 0 {
			earned = row.Points
		}
		students = append(students, models.Student{
			TenantID:      tenantID,
			ID:            row.ID,
			Name:          row.Name,
			GroupID:       row.GroupID,
			Points:        row.Points,
			TotalEarned:   earned,
			TotalDeducted: row.TotalDeducted,
		})
	}
	if err := s.repo.ReplaceAll(ctx, tenantID, students); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("roster imported", zap.String("tenant_id", tenantID), zap.Int("students", len(students)))
	return len(students), nil
}

func (s *StudentService) invalidate(ctx context.Context, tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
}
