package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/admin"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

// AdminSources lists every entity shown in the panel.
type AdminSources struct {
	Users interface {
		List(ctx context.Context) ([]models.User, error)
	}
	Specialities interface {
		List(ctx context.Context) ([]models.Speciality, error)
	}
	Directions interface {
		List(ctx context.Context) ([]models.Direction, error)
	}
	Disciplines interface {
		List(ctx context.Context) ([]models.Discipline, error)
	}
	Teachers interface {
		List(ctx context.Context) ([]models.Teacher, error)
	}
	Features interface {
		List(ctx context.Context) ([]models.Feature, error)
	}
	Subjects interface {
		List(ctx context.Context) ([]models.Subject, error)
	}
	Achievements interface {
		List(ctx context.Context) ([]models.Achievement, error)
	}
}

// RowsQuery filters and orders a panel list.
type RowsQuery struct {
	Search string
	Sort   string
	Desc   bool
}

type teacherWriter interface {
	Get(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error)
}

type imageUploader interface {
	SaveImage(ctx context.Context, in UploadInput) (string, error)
	Discard(ctx context.Context, url string)
}

// AdminService backs the admin panel API.
type AdminService struct {
	sources  AdminSources
	teachers teacherWriter
	uploads  imageUploader
	logger   *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(sources AdminSources, teachers teacherWriter, uploads imageUploader, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{sources: sources, teachers: teachers, uploads: uploads, logger: logger}
}

// Models returns the registered views in menu order.
func (s *AdminService) Models() []admin.ModelView {
	return admin.Views()
}

// Rows lists one model projected onto its list columns.
func (s *AdminService) Rows(ctx context.Context, identity string, query RowsQuery) (*dto.AdminModelRows, error) {
	view, ok := admin.Lookup(identity)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "model not found")
	}

	rows, err := s.loadRows(ctx, identity)
	if err != nil {
		return nil, checkFailed(err, "failed to list "+identity)
	}

	filtered := make([]admin.Row, 0, len(rows))
	for _, row := range rows {
		if view.Matches(row, query.Search) {
			filtered = append(filtered, row)
		}
	}
	view.SortRows(filtered, query.Sort, query.Desc)

	projected := make([]map[string]interface{}, len(filtered))
	for i, row := range filtered {
		projected[i] = view.Project(row)
	}
	return &dto.AdminModelRows{View: view, Rows: projected, Total: len(projected)}, nil
}

// CreateTeacher saves the photo, parses the subjects string and creates the
// teacher. The photo is removed again when the create fails.
func (s *AdminService) CreateTeacher(ctx context.Context, form dto.AdminTeacherForm, photo *UploadInput) (*models.Teacher, error) {
	req := dto.CreateTeacherRequest{
		FIO:      form.FIO,
		Post:     form.Post,
		Subjects: admin.ParseSubjects(form.Subjects),
	}
	if photo == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid teacher payload: image_url is required")
	}

	url, err := s.uploads.SaveImage(ctx, *photo)
	if err != nil {
		return nil, err
	}
	req.ImageURL = url

	teacher, err := s.teachers.Create(ctx, req)
	if err != nil {
		s.uploads.Discard(context.WithoutCancel(ctx), url)
		return nil, err
	}
	return teacher, nil
}

// UpdateTeacher applies the panel form. Blank fields are left unchanged and
// the photo is replaced only when a new file is supplied; the replaced file is
// then removed from storage.
func (s *AdminService) UpdateTeacher(ctx context.Context, id int64, form dto.AdminTeacherForm, photo *UploadInput) (*models.Teacher, error) {
	req := dto.UpdateTeacherRequest{
		FIO:  nonBlank(form.FIO),
		Post: nonBlank(form.Post),
	}
	if strings.TrimSpace(form.Subjects) != "" {
		subjects := admin.ParseSubjects(form.Subjects)
		req.Subjects = &subjects
	}

	var uploaded, previous string
	if photo != nil {
		current, err := s.teachers.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		previous = current.ImageURL

		url, err := s.uploads.SaveImage(ctx, *photo)
		if err != nil {
			return nil, err
		}
		uploaded = url
		req.ImageURL = &uploaded
	}

	teacher, err := s.teachers.Update(ctx, id, req)
	if err != nil {
		if uploaded != "" {
			s.uploads.Discard(context.WithoutCancel(ctx), uploaded)
		}
		return nil, err
	}
	if uploaded != "" && previous != "" && previous != uploaded {
		s.uploads.Discard(context.WithoutCancel(ctx), previous)
	}
	return teacher, nil
}

func (s *AdminService) loadRows(ctx context.Context, identity string) ([]admin.Row, error) {
	switch identity {
	case admin.ViewUsers:
		users, err := s.sources.Users.List(ctx)
		return mapRows(users, err, func(u models.User) admin.Row {
			return admin.Row{"id": u.ID, "name": u.Name, "email": u.Email}
		})
	case admin.ViewSpecialities:
		items, err := s.sources.Specialities.List(ctx)
		return mapRows(items, err, func(v models.Speciality) admin.Row {
			return admin.Row{"id": v.ID, "name": v.Name, "qualification": v.Qualification, "term": v.Term, "direction": v.Direction, "description": v.Description}
		})
	case admin.ViewDirections:
		items, err := s.sources.Directions.List(ctx)
		return mapRows(items, err, func(v models.Direction) admin.Row {
			return admin.Row{"id": v.ID, "name": v.Name}
		})
	case admin.ViewDisciplines:
		directions, err := s.sources.Directions.List(ctx)
		if err != nil {
			return nil, err
		}
		names := make(map[int64]string, len(directions))
		for _, d := range directions {
			names[d.ID] = d.Name
		}
		items, err := s.sources.Disciplines.List(ctx)
		return mapRows(items, err, func(v models.Discipline) admin.Row {
			return admin.Row{"id": v.ID, "name": v.Name, "group": v.Group, "direction": names[v.DirectionID], "direction_id": v.DirectionID, "start_term": v.StartTerm, "end_term": v.EndTerm}
		})
	case admin.ViewTeachers:
		items, err := s.sources.Teachers.List(ctx)
		return mapRows(items, err, func(v models.Teacher) admin.Row {
			return admin.Row{"id": v.ID, "image_url": v.ImageURL, "fio": v.FIO, "post": v.Post, "subjects": []string(v.Subjects)}
		})
	case admin.ViewFeatures:
		items, err := s.sources.Features.List(ctx)
		return mapRows(items, err, func(v models.Feature) admin.Row {
			return admin.Row{"id": v.ID, "title": v.Title, "description": v.Description, "svg_code": derefString(v.Icon)}
		})
	case admin.ViewSubjects:
		items, err := s.sources.Subjects.List(ctx)
		return mapRows(items, err, func(v models.Subject) admin.Row {
			return admin.Row{"id": v.ID, "name": v.Name, "description": v.Description, "svg_code": derefString(v.Icon)}
		})
	case admin.ViewAchievements:
		items, err := s.sources.Achievements.List(ctx)
		return mapRows(items, err, func(v models.Achievement) admin.Row {
			return admin.Row{"id": v.ID, "theme": v.Theme, "title": v.Title, "description": v.Description}
		})
	default:
		return nil, nil
	}
}

func mapRows[T any](items []T, err error, fn func(T) admin.Row) ([]admin.Row, error) {
	if err != nil {
		return nil, err
	}
	rows := make([]admin.Row, len(items))
	for i, item := range items {
		rows[i] = fn(item)
	}
	return rows, nil
}

func nonBlank(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
