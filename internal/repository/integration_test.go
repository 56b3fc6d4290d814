//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/database"
)

func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("itcms"),
		tcpostgres.WithUsername("itcms"),
		tcpostgres.WithPassword("itcms"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.MigrateUp(dbURL))

	db, err := sqlx.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestIntegrationDirectionDeleteCascades(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	directions := NewDirectionRepository(db)
	disciplines := NewDisciplineRepository(db)

	direction := &models.Direction{Name: "Программная инженерия"}
	require.NoError(t, directions.Create(ctx, nil, direction))
	for i, name := range []string{"Алгоритмы", "Сети", "Базы данных"} {
		require.NoError(t, disciplines.Create(ctx, nil, &models.Discipline{
			Name: name, StartTerm: i + 1, EndTerm: i + 2, Group: models.DefaultDisciplineGroup, DirectionID: direction.ID,
		}))
	}

	var count int64
	err := database.NewTransactor(db).WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		var err error
		if count, err = directions.CountDisciplines(ctx, exec, direction.ID); err != nil {
			return err
		}
		return directions.Delete(ctx, exec, direction.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	left, err := disciplines.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestIntegrationUniqueBackstop(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	subjects := NewSubjectRepository(db)

	require.NoError(t, subjects.Create(ctx, nil, &models.Subject{Name: "Go", Description: "Backend"}))
	err := subjects.Create(ctx, nil, &models.Subject{Name: "Go", Description: "Again"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIntegrationTeacherSubjectsRoundTrip(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	teachers := NewTeacherRepository(db)

	teacher := &models.Teacher{ImageURL: "/media/b.png", FIO: "Петров Пётр", Post: "Профессор", Subjects: pq.StringArray{"Go", "Rust"}}
	require.NoError(t, teachers.Create(ctx, nil, teacher))
	require.NoError(t, teachers.Create(ctx, nil, &models.Teacher{ImageURL: "/media/a.png", FIO: "Андреев Андрей", Post: "Доцент", Subjects: pq.StringArray{"SQL"}}))

	list, err := teachers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Андреев Андрей", list[0].FIO)

	stored, err := teachers.FindByID(ctx, nil, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"Go", "Rust"}, stored.Subjects)
}

func TestIntegrationDisciplineTermCheck(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	direction := &models.Direction{Name: "ИБ"}
	require.NoError(t, NewDirectionRepository(db).Create(ctx, nil, direction))

	err := NewDisciplineRepository(db).Create(ctx, nil, &models.Discipline{
		Name: "Криптография", StartTerm: 5, EndTerm: 2, Group: models.DefaultDisciplineGroup, DirectionID: direction.ID,
	})
	require.Error(t, err)
	assert.True(t, IsCheckViolation(err))
}
