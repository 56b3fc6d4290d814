package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthServiceCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(healthProbeQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(155))

	svc := NewHealthService(sqlx.NewDb(db, "postgres"), NewMetricsService(), nil)
	resp := svc.Check(context.Background())

	assert.True(t, resp.DBStatus)
	require.NotNil(t, resp.MathResult)
	assert.Equal(t, 155, *resp.MathResult)
	assert.Empty(t, resp.Error)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthServiceCheckFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(healthProbeQuery)).WillReturnError(errDBDown)

	svc := NewHealthService(sqlx.NewDb(db, "postgres"), nil, nil)
	resp := svc.Check(context.Background())

	assert.False(t, resp.DBStatus)
	assert.Nil(t, resp.MathResult)
	assert.Contains(t, resp.Error, "connection refused")
}
