package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Teacher, error)
	ExistsByFIO(ctx context.Context, exec sqlx.ExtContext, fio string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, teacher *models.Teacher) error
	Update(ctx context.Context, exec sqlx.ExtContext, teacher *models.Teacher) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// TeacherService manages staff profiles.
type TeacherService struct {
	repo      teacherRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService creates a new teacher service.
func NewTeacherService(repo teacherRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	validate, logger = defaults(validate, logger)
	return &TeacherService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns teachers ordered by full name.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list teachers")
	}
	return teachers, nil
}

// Get returns one teacher.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}

// Create adds a teacher with a unique full name. Subjects keep their order.
func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	req.FIO = strings.TrimSpace(req.FIO)
	req.Post = strings.TrimSpace(req.Post)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.Subjects != nil {
		req.Subjects = trimAll(req.Subjects)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	teacher := &models.Teacher{
		ImageURL: req.ImageURL,
		FIO:      req.FIO,
		Post:     req.Post,
		Subjects: pq.StringArray(req.Subjects),
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByFIO(ctx, exec, teacher.FIO, 0)
		if err != nil {
			return checkFailed(err, "failed to check teacher name")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "teacher with this full name already exists")
		}
		return s.repo.Create(ctx, exec, teacher)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create teacher")
	}
	return teacher, nil
}

// Update applies a partial patch to a teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	req.FIO = trimPtr(req.FIO)
	req.Post = trimPtr(req.Post)
	req.ImageURL = trimPtr(req.ImageURL)
	if req.Subjects != nil {
		trimmed := trimAll(*req.Subjects)
		req.Subjects = &trimmed
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	var teacher *models.Teacher
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "teacher not found", "failed to load teacher")
		}
		if req.FIO != nil {
			exists, err := s.repo.ExistsByFIO(ctx, exec, *req.FIO, id)
			if err != nil {
				return checkFailed(err, "failed to check teacher name")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "teacher with this full name already exists")
			}
			current.FIO = *req.FIO
		}
		if req.Post != nil {
			current.Post = *req.Post
		}
		if req.Subjects != nil {
			current.Subjects = pq.StringArray(*req.Subjects)
		}
		if req.ImageURL != nil {
			current.ImageURL = *req.ImageURL
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		teacher = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update teacher")
	}
	return teacher, nil
}

// Delete removes a teacher and returns the deleted record.
func (s *TeacherService) Delete(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher *models.Teacher
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "teacher not found", "failed to load teacher")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		teacher = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete teacher")
	}
	return teacher, nil
}
