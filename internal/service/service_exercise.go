package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type exerciseService struct {
	exerciseRepository store.ExerciseRepository
	logger             *logger.Logger
}

func NewExerciseService(exerciseRepository store.ExerciseRepository, logger *logger.Logger) ExerciseService {
	return &exerciseService{exerciseRepository: exerciseRepository, logger: logger}
}

// List returns all exercises ordered by id.
func (e *exerciseService) List(ctx context.Context) ([]models.Exercise, error) {
	exercises, err := e.exerciseRepository.ListExercises(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing exercises failed")
		return nil, fmt.Errorf("listing exercises failed: %w", err)
	}
	return exercises, nil
}

// GetQuestion returns the prompt of one exercise or store.ErrExerciseNotFound.
func (e *exerciseService) GetQuestion(ctx context.Context, exerciseID int64) (string, error) {
	exercise, err := e.exerciseRepository.GetExercise(ctx, exerciseID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("exercise_id", exerciseID).Msg("loading exercise failed")
		return "", fmt.Errorf("loading exercise %d failed: %w", exerciseID, err)
	}
	return exercise.Question, nil
}
