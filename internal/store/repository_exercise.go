package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type exerciseRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewExerciseRepository constructs an [ExerciseRepository] over db.
func NewExerciseRepository(db *DB, logger *logger.Logger) ExerciseRepository {
	logger.Debug().Msg("creating exercise repository")
	return &exerciseRepository{
		db:     db,
		logger: logger,
	}
}

// ListExercises returns the whole catalog ordered by id.
func (r *exerciseRepository) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExercisesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*exerciseRepository.ListExercises").Msg("error querying exercises")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.wrapUnavailable(err))
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0, 16)
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Question, &e.CorrectQuery); err != nil {
			log.Err(err).Str("func", "*exerciseRepository.ListExercises").Msg("error scanning exercise")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.wrapUnavailable(err))
	}

	return exercises, nil
}

// GetExercise returns a single exercise or [ErrExerciseNotFound].
func (r *exerciseRepository) GetExercise(ctx context.Context, exerciseID int64) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetExerciseQuery(exerciseID)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var e models.Exercise
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Question, &e.CorrectQuery)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Exercise{}, ErrExerciseNotFound
	case err != nil:
		log.Err(err).Str("func", "*exerciseRepository.GetExercise").Int64("exercise_id", exerciseID).Msg("error loading exercise")
		return models.Exercise{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.wrapUnavailable(err))
	}

	return e, nil
}
