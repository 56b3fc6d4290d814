package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const (
	cacheKeyAchievements = "public:achievements"
	cacheKeyFeatures     = "public:features"
	cacheKeySpecialities = "public:specialities"
	cacheKeySubjects     = "public:subjects"
	cacheKeyTeachers     = "public:teachers"
	cacheKeyDirections   = "public:directions-with-disciplines"
)

// CatalogRepositories bundles the read sides used by the public catalog.
type CatalogRepositories struct {
	Achievements interface {
		List(ctx context.Context) ([]models.Achievement, error)
	}
	Features interface {
		List(ctx context.Context) ([]models.Feature, error)
	}
	Specialities interface {
		List(ctx context.Context) ([]models.Speciality, error)
	}
	Subjects interface {
		List(ctx context.Context) ([]models.Subject, error)
	}
	Teachers interface {
		List(ctx context.Context) ([]models.Teacher, error)
	}
	Directions interface {
		List(ctx context.Context) ([]models.Direction, error)
	}
	Disciplines interface {
		ListByDirectionIDs(ctx context.Context, directionIDs []int64) ([]models.Discipline, error)
	}
}

// CatalogService serves the unauthenticated read endpoints.
type CatalogService struct {
	repos  CatalogRepositories
	cache  *CacheService
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(repos CatalogRepositories, cache *CacheService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repos: repos, cache: cache, logger: logger}
}

// Achievements lists achievements by id.
func (s *CatalogService) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return readList(ctx, s, cacheKeyAchievements, "achievements", s.repos.Achievements.List)
}

// Features lists features by id.
func (s *CatalogService) Features(ctx context.Context) ([]models.Feature, error) {
	return readList(ctx, s, cacheKeyFeatures, "features", s.repos.Features.List)
}

// Specialities lists specialities by id.
func (s *CatalogService) Specialities(ctx context.Context) ([]models.Speciality, error) {
	return readList(ctx, s, cacheKeySpecialities, "specialities", s.repos.Specialities.List)
}

// Subjects lists subjects by id.
func (s *CatalogService) Subjects(ctx context.Context) ([]models.Subject, error) {
	return readList(ctx, s, cacheKeySubjects, "subjects", s.repos.Subjects.List)
}

// Teachers lists teachers by full name.
func (s *CatalogService) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return readList(ctx, s, cacheKeyTeachers, "teachers", s.repos.Teachers.List)
}

// DirectionsWithDisciplines returns every direction with its disciplines
// nested. Disciplines are loaded with one extra query and grouped in memory.
func (s *CatalogService) DirectionsWithDisciplines(ctx context.Context) ([]models.DirectionWithDisciplines, error) {
	return readList(ctx, s, cacheKeyDirections, "directions", s.loadDirections)
}

func (s *CatalogService) loadDirections(ctx context.Context) ([]models.DirectionWithDisciplines, error) {
	directions, err := s.repos.Directions.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(directions))
	for i, d := range directions {
		ids[i] = d.ID
	}
	disciplines, err := s.repos.Disciplines.ListByDirectionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return groupDisciplines(directions, disciplines), nil
}

// groupDisciplines nests disciplines under their direction, preserving the
// input order of both slices.
func groupDisciplines(directions []models.Direction, disciplines []models.Discipline) []models.DirectionWithDisciplines {
	byDirection := make(map[int64][]models.Discipline, len(directions))
	for _, d := range disciplines {
		byDirection[d.DirectionID] = append(byDirection[d.DirectionID], d)
	}

	result := make([]models.DirectionWithDisciplines, 0, len(directions))
	for _, d := range directions {
		nested := byDirection[d.ID]
		if nested == nil {
			nested = []models.Discipline{}
		}
		result = append(result, models.DirectionWithDisciplines{ID: d.ID, Name: d.Name, Disciplines: nested})
	}
	return result
}

func readList[T any](ctx context.Context, s *CatalogService, key, resource string, load func(context.Context) ([]T, error)) ([]T, error) {
	items, err := readThrough(ctx, s.cache, key, load)
	if err != nil {
		return nil, checkFailed(err, "failed to list "+resource)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
