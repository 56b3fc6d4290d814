package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

func TestDirectionCountAndDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDirectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM disciplines WHERE direction_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM directions WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.CountDisciplines(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, repo.Delete(context.Background(), nil, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectionExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDirectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM directions WHERE id = $1)")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListDisciplinesByDirectionIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDisciplineRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "start_term", "end_term", "group", "direction_id"}).
		AddRow(1, "Math", 1, 2, models.DefaultDisciplineGroup, 1).
		AddRow(3, "Networks", 3, 4, "Спец", 2)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM disciplines WHERE direction_id = ANY($1) ORDER BY direction_id, id`)).
		WithArgs(pq.Array([]int64{1, 2})).
		WillReturnRows(rows)

	disciplines, err := repo.ListByDirectionIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, disciplines, 2)
	assert.Equal(t, "Спец", disciplines[1].Group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDisciplinesByNoDirections(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	disciplines, err := NewDisciplineRepository(db).ListByDirectionIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, disciplines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherListScansSubjectsArray(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "image_url", "fio", "post", "subjects"}).
		AddRow(2, "/media/a.png", "Иванов Иван", "Доцент", "{Go,\"Базы данных\"}")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, image_url, fio, post, subjects FROM teachers ORDER BY fio, id")).
		WillReturnRows(rows)

	teachers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, pq.StringArray{"Go", "Базы данных"}, teachers[0].Subjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueViolationDetection(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.False(t, IsUniqueViolation(nil))
}
