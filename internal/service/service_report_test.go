package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mock"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

func tableData(table models.ReportTable) models.TableData {
	return models.TableData{
		Table:   table,
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", table.Name}},
	}
}

func TestReportService_BuildPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReportRepository(ctrl)
	svc := NewReportService(repo, logger.Nop())
	ctx := context.Background()

	var calls []any
	for _, table := range models.ReportTables {
		calls = append(calls, repo.EXPECT().FetchTable(ctx, table).Return(tableData(table), nil))
	}
	gomock.InOrder(calls...)

	var buf bytes.Buffer
	require.NoError(t, svc.BuildPDF(ctx, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestReportService_BuildPDF_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReportRepository(ctrl)
	svc := NewReportService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().FetchTable(ctx, models.ReportTables[0]).Return(models.TableData{}, store.ErrDatabaseUnavailable)

	var buf bytes.Buffer
	err := svc.BuildPDF(ctx, &buf)
	assert.ErrorIs(t, err, ErrBuildingReport)
	assert.ErrorIs(t, err, store.ErrDatabaseUnavailable)
	assert.Zero(t, buf.Len())
}

func TestReportService_ExportAllToCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReportRepository(ctrl)
	sink := mock.NewMockExportSink(ctrl)
	svc := NewReportService(repo, logger.Nop())
	ctx := context.Background()

	for _, table := range models.ReportTables {
		repo.EXPECT().FetchTable(ctx, table).Return(tableData(table), nil)
		sink.EXPECT().Put(ctx, table.FileName(), gomock.Any()).DoAndReturn(
			func(_ context.Context, name string, data []byte) (string, error) {
				records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
				require.NoError(t, err)
				assert.Equal(t, []string{"id", "name"}, records[0])
				assert.Len(t, records, 2)
				return "static/" + name, nil
			},
		)
	}

	results, err := svc.ExportAllToCSV(ctx, sink)
	require.NoError(t, err)
	require.Len(t, results, len(models.ReportTables))
	assert.Equal(t, "Teams", results[0].Table)
	assert.Equal(t, "static/teams.csv", results[0].Location)
	assert.Equal(t, 1, results[0].Rows)
	assert.Equal(t, "static/match_results.csv", results[4].Location)
}

func TestReportService_ExportAllToCSV_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReportRepository(ctrl)
	sink := mock.NewMockExportSink(ctrl)
	svc := NewReportService(repo, logger.Nop())
	ctx := context.Background()

	fetchErr := errors.New("relation does not exist")
	putErr := errors.New("disk full")

	for i, table := range models.ReportTables {
		switch i {
		case 1:
			repo.EXPECT().FetchTable(ctx, table).Return(models.TableData{}, fetchErr)
		case 3:
			repo.EXPECT().FetchTable(ctx, table).Return(tableData(table), nil)
			sink.EXPECT().Put(ctx, table.FileName(), gomock.Any()).Return("", putErr)
		default:
			repo.EXPECT().FetchTable(ctx, table).Return(tableData(table), nil)
			sink.EXPECT().Put(ctx, table.FileName(), gomock.Any()).Return("ok", nil)
		}
	}

	results, err := svc.ExportAllToCSV(ctx, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.ErrorIs(t, err, putErr)
	assert.ErrorContains(t, err, "Players")

	require.Len(t, results, 5)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, fetchErr)
	assert.NoError(t, results[2].Err)
	assert.ErrorIs(t, results[3].Err, putErr)
	assert.Equal(t, "ok", results[4].Location)
}
