package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

func TestListSubjectsOrderedByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "svg_code"}).
		AddRow(1, "Go", "Backend", "fa-brands fa-golang").
		AddRow(2, "SQL", "Databases", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, svg_code FROM subjects ORDER BY id")).
		WillReturnRows(rows)

	subjects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "fa-brands fa-golang", *subjects[0].Icon)
	assert.Nil(t, subjects[1].Icon)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectExistsByName(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM subjects WHERE name = $1 LIMIT 1")).
		WithArgs("Go").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), nil, "Go", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectCreateAndUpdateInsideTx(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	icon := "fa-code"
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO subjects").
		WithArgs("Go", "Backend", &icon).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subjects SET name = $2, description = $3, svg_code = $4 WHERE id = $1")).
		WithArgs(int64(11), "Golang", "Backend", &icon).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)
	subject := &models.Subject{Name: "Go", Description: "Backend", Icon: &icon}
	require.NoError(t, repo.Create(context.Background(), tx, subject))
	assert.Equal(t, int64(11), subject.ID)

	subject.Name = "Golang"
	require.NoError(t, repo.Update(context.Background(), tx, subject))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
