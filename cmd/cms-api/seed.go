package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog content from a YAML file",
	Long: `Load catalog content from a YAML file through the regular services.

Records whose natural key already exists are skipped, so the command can be
re-run against a populated database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readSeedFile(seedFile)
		if err != nil {
			return err
		}

		cfg, logr, err := bootstrap()
		if err != nil {
			return err
		}
		defer logr.Sync() //nolint:errcheck

		a, err := newApp(cmd.Context(), cfg, logr, false)
		if err != nil {
			return err
		}
		defer a.close()

		s := &seeder{
			subjects:     a.svc.subjects,
			features:     a.svc.features,
			specialities: a.svc.specialities,
			achievements: a.svc.achievements,
			directions:   a.svc.directions,
			directionIDs: a.repos.directions,
			disciplines:  a.svc.disciplines,
			teachers:     a.svc.teachers,
			logger:       logr,
		}
		report, err := s.run(cmd.Context(), content)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed complete: %d created, %d skipped\n", report.created, report.skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "content.yaml", "YAML content file")
}

type seedIconItem struct {
	Name        string  `yaml:"name"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Icon        *string `yaml:"svg_code"`
}

type seedSpeciality struct {
	Name          string `yaml:"name"`
	Qualification string `yaml:"qualification"`
	Term          int    `yaml:"term"`
	Direction     string `yaml:"direction"`
	Description   string `yaml:"description"`
}

type seedAchievement struct {
	Theme       string `yaml:"theme"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type seedDiscipline struct {
	Name      string `yaml:"name"`
	Group     string `yaml:"group"`
	StartTerm int    `yaml:"start_term"`
	EndTerm   int    `yaml:"end_term"`
}

type seedDirection struct {
	Name        string           `yaml:"name"`
	Disciplines []seedDiscipline `yaml:"disciplines"`
}

type seedTeacher struct {
	FIO      string   `yaml:"fio"`
	Post     string   `yaml:"post"`
	Subjects []string `yaml:"subjects"`
	ImageURL string   `yaml:"image_url"`
}

// seedContent is the YAML document layout.
type seedContent struct {
	Subjects     []seedIconItem    `yaml:"subjects"`
	Features     []seedIconItem    `yaml:"features"`
	Specialities []seedSpeciality  `yaml:"specialities"`
	Achievements []seedAchievement `yaml:"achievements"`
	Directions   []seedDirection   `yaml:"directions"`
	Teachers     []seedTeacher     `yaml:"teachers"`
}

func readSeedFile(path string) (*seedContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return decodeSeed(f)
}

func decodeSeed(r io.Reader) (*seedContent, error) {
	var content seedContent
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&content); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &content, nil
}

type seedReport struct {
	created int
	skipped int
}

type seeder struct {
	subjects interface {
		Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error)
	}
	features interface {
		Create(ctx context.Context, req dto.CreateFeatureRequest) (*models.Feature, error)
	}
	specialities interface {
		Create(ctx context.Context, req dto.CreateSpecialityRequest) (*models.Speciality, error)
	}
	achievements interface {
		Create(ctx context.Context, req dto.CreateAchievementRequest) (*models.Achievement, error)
	}
	directions interface {
		Create(ctx context.Context, req dto.CreateDirectionRequest) (*models.Direction, error)
	}
	directionIDs interface {
		List(ctx context.Context) ([]models.Direction, error)
	}
	disciplines interface {
		Create(ctx context.Context, req dto.CreateDisciplineRequest) (*models.Discipline, error)
	}
	teachers interface {
		Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error)
	}
	logger *zap.Logger
}

func (s *seeder) run(ctx context.Context, content *seedContent) (seedReport, error) {
	var report seedReport
	track := func(kind, key string, err error) error {
		switch {
		case err == nil:
			report.created++
			return nil
		case errors.Is(err, appErrors.ErrConflict):
			report.skipped++
			s.logger.Info("seed record exists, skipping", zap.String("kind", kind), zap.String("key", key))
			return nil
		default:
			return fmt.Errorf("seed %s %q: %w", kind, key, err)
		}
	}

	for _, item := range content.Subjects {
		_, err := s.subjects.Create(ctx, dto.CreateSubjectRequest{Name: item.Name, Description: item.Description, Icon: item.Icon})
		if err := track("subject", item.Name, err); err != nil {
			return report, err
		}
	}
	for _, item := range content.Features {
		_, err := s.features.Create(ctx, dto.CreateFeatureRequest{Title: item.Title, Description: item.Description, Icon: item.Icon})
		if err := track("feature", item.Title, err); err != nil {
			return report, err
		}
	}
	for _, item := range content.Specialities {
		_, err := s.specialities.Create(ctx, dto.CreateSpecialityRequest{
			Name:          item.Name,
			Qualification: item.Qualification,
			Term:          item.Term,
			Direction:     item.Direction,
			Description:   item.Description,
		})
		if err := track("speciality", item.Name, err); err != nil {
			return report, err
		}
	}
	for _, item := range content.Achievements {
		_, err := s.achievements.Create(ctx, dto.CreateAchievementRequest{Theme: item.Theme, Title: item.Title, Description: item.Description})
		if err := track("achievement", item.Title, err); err != nil {
			return report, err
		}
	}

	if len(content.Directions) > 0 {
		for _, d := range content.Directions {
			_, err := s.directions.Create(ctx, dto.CreateDirectionRequest{Name: d.Name})
			if err := track("direction", d.Name, err); err != nil {
				return report, err
			}
		}
		existing, err := s.directionIDs.List(ctx)
		if err != nil {
			return report, fmt.Errorf("list directions: %w", err)
		}
		ids := make(map[string]int64, len(existing))
		for _, d := range existing {
			ids[d.Name] = d.ID
		}
		for _, d := range content.Directions {
			for _, item := range d.Disciplines {
				_, err := s.disciplines.Create(ctx, dto.CreateDisciplineRequest{
					Name:        item.Name,
					Group:       item.Group,
					StartTerm:   item.StartTerm,
					EndTerm:     item.EndTerm,
					DirectionID: ids[d.Name],
				})
				if err := track("discipline", item.Name, err); err != nil {
					return report, err
				}
			}
		}
	}

	for _, item := range content.Teachers {
		_, err := s.teachers.Create(ctx, dto.CreateTeacherRequest{FIO: item.FIO, Post: item.Post, Subjects: item.Subjects, ImageURL: item.ImageURL})
		if err := track("teacher", item.FIO, err); err != nil {
			return report, err
		}
	}
	return report, nil
}
