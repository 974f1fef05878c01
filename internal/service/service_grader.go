package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type graderService struct {
	exerciseRepository store.ExerciseRepository
	executor           store.QueryExecutor
	logger             *logger.Logger
}

func NewGraderService(exerciseRepository store.ExerciseRepository, executor store.QueryExecutor, logger *logger.Logger) GraderService {
	return &graderService{
		exerciseRepository: exerciseRepository,
		executor:           executor,
		logger:             logger,
	}
}

// Submit grades userQuery against the reference query of an exercise.
//
// Failures of either query are reported in-band through the returned
// report's Message and never as an error. An error is returned only when
// the exercise itself cannot be loaded; the report is filled in that case
// too.
func (g *graderService) Submit(ctx context.Context, exerciseID int64, userQuery string) (models.GradeReport, error) {
	log := logger.FromContext(ctx).With().Int64("exercise_id", exerciseID).Logger()
	report := models.GradeReport{UserQuery: userQuery}

	exercise, err := g.exerciseRepository.GetExercise(ctx, exerciseID)
	if err != nil {
		log.Err(err).Msg("loading exercise failed")
		switch {
		case errors.Is(err, store.ErrExerciseNotFound):
			report.Message = errorMessagePrefix + MessageExerciseNotFound
		case errors.Is(err, store.ErrDatabaseUnavailable):
			report.Message = MessageDatabaseUnavailable
		default:
			report.Message = errorMessagePrefix + driverMessage(err)
		}
		return report, fmt.Errorf("loading exercise %d failed: %w", exerciseID, err)
	}

	if strings.TrimSpace(userQuery) == "" {
		report.Message = errorMessagePrefix + MessageEmptyQuery
		return report, nil
	}

	userResult, correctResult, err := g.executor.ExecuteBoth(ctx, userQuery, exercise.CorrectQuery)
	if err != nil {
		qErr := NewQueryError(err)
		log.Info().Err(err).Int("kind", int(qErr.Kind)).Msg("submitted query failed")
		if qErr.Kind == store.QueryErrorUnavailable {
			report.Message = qErr.Message
		} else {
			report.Message = errorMessagePrefix + qErr.Message
		}
		return report, nil
	}

	report.CorrectQuery = exercise.CorrectQuery
	report.UserResult = userResult.Rows
	report.CorrectResult = correctResult.Rows
	report.UserColumns = userResult.Columns
	report.CorrectColumns = correctResult.Columns
	report.Correct = rowsEqual(userResult.Rows, correctResult.Rows)

	if report.Correct {
		report.Message = MessageCorrect
	} else {
		report.Message = MessageIncorrect
	}

	log.Debug().Bool("correct", report.Correct).Msg("query graded")
	return report, nil
}

// RunQuery executes query in the sandbox. Failures are returned as
// *QueryError.
func (g *graderService) RunQuery(ctx context.Context, query string) (models.QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return models.QueryResult{}, &QueryError{Message: MessageEmptyQuery, Err: ErrInvalidDataProvided}
	}

	result, err := g.executor.Execute(ctx, query)
	if err != nil {
		qErr := NewQueryError(err)
		logger.FromContext(ctx).Info().Err(err).Int("kind", int(qErr.Kind)).Msg("console query failed")
		return models.QueryResult{}, qErr
	}

	return result, nil
}
