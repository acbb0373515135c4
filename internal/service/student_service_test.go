package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type studentRepoStub struct {
	students []models.Student
	replaced []models.Student
	err      error
}

func (s *studentRepoStub) List(ctx context.Context, tenantID string) ([]models.Student, error) {
	return s.students, s.err
}

func (s *studentRepoStub) FindByID(ctx context.Context, tenantID, id string) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.students {
		if s.students[i].ID == id {
			return &s.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	if s.err != nil {
		return s.err
	}
	s.students = append(s.students, *student)
	return nil
}

func (s *studentRepoStub) Update(ctx context.Context, tenantID, id, name, groupID string) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.students {
		if s.students[i].ID == id {
			s.students[i].Name = name
			s.students[i].GroupID = groupID
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *studentRepoStub) Delete(ctx context.Context, tenantID, id string) error {
	return s.err
}

func (s *studentRepoStub) ReplaceAll(ctx context.Context, tenantID string, students []models.Student) error {
	if s.err != nil {
		return s.err
	}
	s.replaced = students
	return nil
}

func TestStudentServiceCreateRequiresIDAndName(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, validator.New(), nil)
	_, err := svc.Create(context.Background(), "t1", CreateStudentRequest{Name: "小明"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCreateStartsWithZeroLedger(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, validator.New(), nil)

	student, err := svc.Create(context.Background(), "t1", CreateStudentRequest{ID: "20260101", Name: " 小明 "})
	require.NoError(t, err)
	assert.Equal(t, "小明", student.Name)
	assert.Equal(t, 0, student.Points)
	assert.Equal(t, 0, student.TotalEarned)
	assert.Equal(t, 0, student.TotalDeducted)
}

func TestStudentServiceUpdateMissingStudent(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, validator.New(), nil)
	err := svc.Update(context.Background(), "t1", "ghost", UpdateStudentRequest{Name: "小红"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceImportSeedsEarnedFromBalance(t *testing.T) {
	repo := &studentRepoStub{}
	cache := &invalidatorStub{}
	svc := NewStudentService(repo, cache, validator.New(), nil)

	count, err := svc.Import(context.Background(), "t1", []models.StudentImport{
		{ID: "s1", Name: "小明", Points: 12},
		{ID: "s2", Name: "小红", Points: 8, TotalEarned: 20, TotalDeducted: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.replaced, 2)
	assert.Equal(t, 12, repo.replaced[0].TotalEarned)
	assert.Equal(t, 20, repo.replaced[1].TotalEarned)
	assert.Equal(t, 12, repo.replaced[1].TotalDeducted)
	assert.Equal(t, []string{"t1"}, cache.tenants)
}

func TestStudentServiceImportRejectsDuplicateIDs(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, validator.New(), nil)
	_, err := svc.Import(context.Background(), "t1", []models.StudentImport{
		{ID: "s1", Name: "小明"},
		{ID: "s1", Name: "小红"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceImportRejectsEmptyPayload(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, validator.New(), nil)
	_, err := svc.Import(context.Background(), "t1", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
