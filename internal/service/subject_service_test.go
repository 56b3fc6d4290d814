package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

func newSubjectServiceForTest(repo *mockSubjectRepo) (*SubjectService, *fakeTx) {
	tx := &fakeTx{}
	return NewSubjectService(repo, tx, nil, zap.NewNop()), tx
}

func TestSubjectServiceCreate(t *testing.T) {
	repo := newMockSubjectRepo()
	svc, tx := newSubjectServiceForTest(repo)

	subject, err := svc.Create(context.Background(), dto.CreateSubjectRequest{
		Name:        "  Go ",
		Description: `<p>Fast</p><script>alert(1)</script>`,
		Icon:        strPtr("fa-brands fa-golang"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), subject.ID)
	assert.Equal(t, "Go", subject.Name)
	assert.Equal(t, "<p>Fast</p>", subject.Description)
	require.NotNil(t, subject.Icon)
	assert.Equal(t, 1, tx.calls)
}

func TestSubjectServiceCreateConflict(t *testing.T) {
	repo := newMockSubjectRepo(models.Subject{ID: 1, Name: "Go", Description: "d"})
	svc, _ := newSubjectServiceForTest(repo)

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Go", Description: "another"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Len(t, repo.items, 1)
}

func TestSubjectServiceCreateValidation(t *testing.T) {
	svc, tx := newSubjectServiceForTest(newMockSubjectRepo())

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "   ", Description: "d"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Contains(t, appErrors.FromError(err).Message, "name")

	_, err = svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Go", Description: "<script>x</script>"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, tx.calls)
}

func TestSubjectServiceCreateStorageFailure(t *testing.T) {
	repo := newMockSubjectRepo()
	repo.createErr = errors.New("pq: duplicate key value violates unique constraint")
	svc, _ := newSubjectServiceForTest(repo)

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Go", Description: "d"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStorage.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.NotContains(t, appErr.Message, "duplicate key")
}

func TestSubjectServiceUpdatePartial(t *testing.T) {
	icon := "fa-old"
	repo := newMockSubjectRepo(models.Subject{ID: 3, Name: "Go", Description: "old", Icon: &icon})
	svc, _ := newSubjectServiceForTest(repo)

	updated, err := svc.Update(context.Background(), 3, dto.UpdateSubjectRequest{Description: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, "new", updated.Description)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, "fa-old", *updated.Icon)
}

func TestSubjectServiceUpdateClearsIcon(t *testing.T) {
	icon := "fa-old"
	repo := newMockSubjectRepo(models.Subject{ID: 3, Name: "Go", Description: "d", Icon: &icon})
	svc, _ := newSubjectServiceForTest(repo)

	updated, err := svc.Update(context.Background(), 3, dto.UpdateSubjectRequest{Icon: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Icon)
	assert.Nil(t, repo.items[3].Icon)
}

func TestSubjectServiceUpdateRejectsExplicitEmptyName(t *testing.T) {
	repo := newMockSubjectRepo(models.Subject{ID: 3, Name: "Go", Description: "d"})
	svc, _ := newSubjectServiceForTest(repo)

	_, err := svc.Update(context.Background(), 3, dto.UpdateSubjectRequest{Name: strPtr("")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestSubjectServiceUpdateKeepsOwnName(t *testing.T) {
	repo := newMockSubjectRepo(
		models.Subject{ID: 1, Name: "Go", Description: "d"},
		models.Subject{ID: 2, Name: "Rust", Description: "d"},
	)
	svc, _ := newSubjectServiceForTest(repo)

	_, err := svc.Update(context.Background(), 1, dto.UpdateSubjectRequest{Name: strPtr("Go")})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 1, dto.UpdateSubjectRequest{Name: strPtr("Rust")})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "Go", repo.items[1].Name)
}

func TestSubjectServiceNotFound(t *testing.T) {
	svc, _ := newSubjectServiceForTest(newMockSubjectRepo())

	_, err := svc.Update(context.Background(), 99, dto.UpdateSubjectRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSubjectServiceDeleteReturnsRecord(t *testing.T) {
	repo := newMockSubjectRepo(models.Subject{ID: 5, Name: "SQL", Description: "d"})
	svc, _ := newSubjectServiceForTest(repo)

	deleted, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "SQL", deleted.Name)
	assert.Empty(t, repo.items)
}

func TestSubjectServiceTransactionFailure(t *testing.T) {
	svc := NewSubjectService(newMockSubjectRepo(), &fakeTx{err: errDBDown}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Go", Description: "d"})
	assert.ErrorIs(t, err, appErrors.ErrStorage)
}

func TestSubjectServiceKeepsPlainDescription(t *testing.T) {
	repo := newMockSubjectRepo()
	svc, _ := newSubjectServiceForTest(repo)

	subject, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Python", Description: `Курс "Python" & 'Go'`})
	require.NoError(t, err)
	assert.Equal(t, `Курс "Python" & 'Go'`, subject.Description)
	assert.Equal(t, `Курс "Python" & 'Go'`, repo.items[subject.ID].Description)
}
