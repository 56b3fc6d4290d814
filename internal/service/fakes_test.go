package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/database"
)

type fakeTx struct {
	calls int
	err   error
}

func (f *fakeTx) WithinTx(ctx context.Context, fn database.TxFunc) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

var errDBDown = errors.New("pq: connection refused")

type mockSubjectRepo struct {
	items     map[int64]*models.Subject
	nextID    int64
	createErr error
}

func newMockSubjectRepo(items ...models.Subject) *mockSubjectRepo {
	m := &mockSubjectRepo{items: map[int64]*models.Subject{}}
	for _, item := range items {
		cp := item
		m.items[item.ID] = &cp
		if item.ID > m.nextID {
			m.nextID = item.ID
		}
	}
	return m
}

func (m *mockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Subject, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	for id, item := range m.items {
		if item.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) Create(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	subject.ID = m.nextID
	cp := *subject
	m.items[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error {
	cp := *subject
	m.items[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockPlanRepo struct {
	directions  map[int64]*models.Direction
	disciplines map[int64]*models.Discipline
	nextID      int64
	listErr     error
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{directions: map[int64]*models.Direction{}, disciplines: map[int64]*models.Discipline{}}
}

func (m *mockPlanRepo) addDirection(id int64, name string) {
	m.directions[id] = &models.Direction{ID: id, Name: name}
	if id > m.nextID {
		m.nextID = id
	}
}

func (m *mockPlanRepo) addDiscipline(d models.Discipline) {
	cp := d
	m.disciplines[d.ID] = &cp
	if d.ID > m.nextID {
		m.nextID = d.ID
	}
}

// directions side

type mockDirectionRepo struct{ *mockPlanRepo }

func (m mockDirectionRepo) List(ctx context.Context) ([]models.Direction, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Direction, 0, len(m.directions))
	for _, d := range m.directions {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m mockDirectionRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Direction, error) {
	if d, ok := m.directions[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m mockDirectionRepo) Exists(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	_, ok := m.directions[id]
	return ok, nil
}

func (m mockDirectionRepo) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	for id, d := range m.directions {
		if d.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m mockDirectionRepo) Create(ctx context.Context, exec sqlx.ExtContext, d *models.Direction) error {
	m.nextID++
	d.ID = m.nextID
	cp := *d
	m.directions[d.ID] = &cp
	return nil
}

func (m mockDirectionRepo) Update(ctx context.Context, exec sqlx.ExtContext, d *models.Direction) error {
	cp := *d
	m.directions[d.ID] = &cp
	return nil
}

func (m mockDirectionRepo) CountDisciplines(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	var n int64
	for _, d := range m.disciplines {
		if d.DirectionID == id {
			n++
		}
	}
	return n, nil
}

func (m mockDirectionRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	if _, ok := m.directions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.directions, id)
	for did, d := range m.disciplines {
		if d.DirectionID == id {
			delete(m.disciplines, did)
		}
	}
	return nil
}

// disciplines side

type mockDisciplineRepo struct{ *mockPlanRepo }

func (m mockDisciplineRepo) List(ctx context.Context) ([]models.Discipline, error) {
	out := make([]models.Discipline, 0, len(m.disciplines))
	for _, d := range m.disciplines {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m mockDisciplineRepo) ListByDirectionIDs(ctx context.Context, ids []int64) ([]models.Discipline, error) {
	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	all, _ := m.List(ctx)
	out := []models.Discipline{}
	for _, d := range all {
		if wanted[d.DirectionID] {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DirectionID < out[j].DirectionID })
	return out, nil
}

func (m mockDisciplineRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Discipline, error) {
	if d, ok := m.disciplines[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m mockDisciplineRepo) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	for id, d := range m.disciplines {
		if d.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m mockDisciplineRepo) Create(ctx context.Context, exec sqlx.ExtContext, d *models.Discipline) error {
	m.nextID++
	d.ID = m.nextID
	cp := *d
	m.disciplines[d.ID] = &cp
	return nil
}

func (m mockDisciplineRepo) Update(ctx context.Context, exec sqlx.ExtContext, d *models.Discipline) error {
	cp := *d
	m.disciplines[d.ID] = &cp
	return nil
}

func (m mockDisciplineRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	if _, ok := m.disciplines[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.disciplines, id)
	return nil
}

type mockTeacherRepo struct {
	items     map[int64]*models.Teacher
	nextID    int64
	updateErr error
}

func newMockTeacherRepo(items ...models.Teacher) *mockTeacherRepo {
	m := &mockTeacherRepo{items: map[int64]*models.Teacher{}}
	for _, item := range items {
		cp := item
		m.items[item.ID] = &cp
		if item.ID > m.nextID {
			m.nextID = item.ID
		}
	}
	return m
}

func (m *mockTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FIO == out[j].FIO {
			return out[i].ID < out[j].ID
		}
		return out[i].FIO < out[j].FIO
	})
	return out, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Teacher, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) ExistsByFIO(ctx context.Context, exec sqlx.ExtContext, fio string, excludeID int64) (bool, error) {
	for id, item := range m.items {
		if item.FIO == fio && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, exec sqlx.ExtContext, t *models.Teacher) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, exec sqlx.ExtContext, t *models.Teacher) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	delete(m.items, id)
	return nil
}

type mockUserRepo struct {
	items  map[int64]*models.User
	nextID int64
}

func newMockUserRepo(users ...models.User) *mockUserRepo {
	m := &mockUserRepo{items: map[int64]*models.User{}}
	for _, u := range users {
		cp := u
		m.items[u.ID] = &cp
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.User, error) {
	if u, ok := m.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error) {
	for id, u := range m.items {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Create(ctx context.Context, exec sqlx.ExtContext, u *models.User) error {
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, exec sqlx.ExtContext, u *models.User) error {
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }
