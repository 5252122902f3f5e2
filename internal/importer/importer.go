// Package importer loads curriculum data exported as semicolon-separated
// files into the catalog, creating or updating records by natural key.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/app/services"
	"github.com/yigit/unicatalog/internal/pkg/filestorage"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
)

// Import files, in the order they are applied
const (
	CoursesFile       = "courses.csv"
	DisciplinesFile   = "disciplines.csv"
	PrerequisitesFile = "prerequisites.csv"
	ModalitiesFile    = "modalities.csv"
	CurriculumFile    = "curriculum.csv"
	OfferingsFile     = "offerings.csv"
	SchedulesFile     = "schedules.csv"
)

type step struct {
	file    string
	columns []string
	apply   func(context.Context, record) error
}

// Summary counts what a run did.
type Summary struct {
	Imported int
	Failed   int
	Missing  []string
}

// OK reports whether every row was imported.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Importer applies import files from a storage to the catalog services.
type Importer struct {
	storage filestorage.FileStorage
	svc     *services.Services
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates an importer; m may be nil.
func New(storage filestorage.FileStorage, svc *services.Services, m *metrics.Metrics, logger zerolog.Logger) *Importer {
	return &Importer{storage: storage, svc: svc, metrics: m, logger: logger}
}

func (im *Importer) steps() []step {
	return []step{
		{CoursesFile, []string{"catalogYear", "courseCode", "level", "name"}, im.importCourse},
		{DisciplinesFile, []string{"code", "name", "credits", "department", "description"}, im.importDiscipline},
		{PrerequisitesFile, []string{"code", "prerequisites"}, im.importPrerequisites},
		{ModalitiesFile, []string{"catalogYear", "courseCode", "modalityCode", "name", "creditLimit"}, im.importModality},
		{CurriculumFile, []string{"catalogYear", "courseCode", "modalityCode", "blockCode", "blockType", "credits", "requirement", "suggestedSemester"}, im.importCurriculum},
		{OfferingsFile, []string{"year", "period", "disciplineCode", "class", "vacancy"}, im.importOffering},
		{SchedulesFile, []string{"year", "period", "disciplineCode", "class", "weekday", "hour", "room"}, im.importSchedule},
	}
}

// Run applies every import file in order. Missing files are skipped and
// failing rows are logged and counted without stopping the run; only
// unreadable files abort it.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	im.logger.Info().Str("source", im.storage.Location()).Msg("Starting import")

	for _, st := range im.steps() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		records, err := im.read(ctx, st)
		if errors.Is(err, filestorage.ErrFileNotFound) {
			im.logger.Warn().Str("file", st.file).Msg("Import file not found, skipping")
			summary.Missing = append(summary.Missing, st.file)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read %s: %w", st.file, err)
		}

		imported, failed := 0, 0
		for _, rec := range records {
			if err := st.apply(ctx, rec); err != nil {
				failed++
				im.count(st.file, "failed")
				im.logger.Error().Err(err).Str("file", st.file).Int("line", rec.line).Msg("Row import failed")
				continue
			}
			imported++
			im.count(st.file, "imported")
		}

		summary.Imported += imported
		summary.Failed += failed
		im.logger.Info().Str("file", st.file).Int("imported", imported).Int("failed", failed).Msg("Import file processed")
	}

	im.logger.Info().Int("imported", summary.Imported).Int("failed", summary.Failed).Msg("Import finished")
	return summary, nil
}

func (im *Importer) read(ctx context.Context, st step) ([]record, error) {
	rc, err := im.storage.Open(ctx, st.file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readRecords(rc, st.columns)
}

func (im *Importer) count(file, outcome string) {
	if im.metrics != nil {
		im.metrics.ImportedRows.WithLabelValues(file, outcome).Inc()
	}
}
