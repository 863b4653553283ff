package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScoreRuns() []ScoreRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1 * time.Hour)
	configParams1 := `{"limit":25,"cache-backend":"sqlite"}`

	startTime2 := now.Add(-10 * time.Minute)
	// The second run is still in progress, leaving nullable fields nil

	return []ScoreRun{
		{
			RunID:        1,
			StartTime:    startTime1,
			EndTime:      &endTime1,
			PackageCount: 12,
			ConfigParams: &configParams1,
		},
		{
			RunID:        2,
			StartTime:    startTime2,
			EndTime:      nil,
			PackageCount: 0,
			ConfigParams: nil,
		},
	}
}

func samplePackageScores() []PackageScore {
	now := time.Now()
	return []PackageScore{
		{
			RunID:           1,
			PackageName:     "axios",
			RecordedAt:      now.Add(-1 * time.Hour),
			Score:           74,
			WeeklyDownloads: 45_000_000,
			BundleSize:      13_000,
			LastCommitDays:  7,
			SecurityIssues:  0,
			Deprecated:      false,
		},
		{
			RunID:           1,
			PackageName:     "request",
			RecordedAt:      now.Add(-1 * time.Hour),
			Score:           0,
			WeeklyDownloads: 15_000_000,
			BundleSize:      180_000,
			LastCommitDays:  900,
			SecurityIssues:  2,
			Deprecated:      true,
		},
	}
}

func TestScoreRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sc := parquet.SchemaOf(new(ScoreRun))
	require.NotNil(t, sc)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"package_count",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := sc.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestPackageScoreStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sc := parquet.SchemaOf(new(PackageScore))
	require.NotNil(t, sc)

	expectedColumns := []string{
		"run_id",
		"package_name",
		"recorded_at",
		"score",
		"weekly_downloads",
		"bundle_size",
		"last_commit_days",
		"security_issues",
		"deprecated",
	}

	for _, colName := range expectedColumns {
		col, ok := sc.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteScoreRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "score_runs.parquet")

	data := sampleScoreRuns()
	err := WriteScoreRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ScoreRun](file)
	defer reader.Close()

	readData := make([]ScoreRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].PackageCount, readData[i].PackageCount)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime)
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond)
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams)
		} else {
			require.NotNil(t, readData[i].ConfigParams)
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams)
		}
	}
}

func TestWritePackageScoresParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "package_scores.parquet")

	data := samplePackageScores()
	err := WritePackageScoresParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[PackageScore](file)
	defer reader.Close()

	readData := make([]PackageScore, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].PackageName, readData[i].PackageName)
		assert.Equal(t, data[i].Score, readData[i].Score)
		assert.Equal(t, data[i].WeeklyDownloads, readData[i].WeeklyDownloads)
		assert.Equal(t, data[i].BundleSize, readData[i].BundleSize)
		assert.Equal(t, data[i].SecurityIssues, readData[i].SecurityIssues)
		assert.Equal(t, data[i].Deprecated, readData[i].Deprecated)
	}
}

func TestWriteScoreRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_runs.parquet")

	err := WriteScoreRunsParquet([]ScoreRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWritePackageScoresParquet_InvalidPath(t *testing.T) {
	err := WritePackageScoresParquet(samplePackageScores(), "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertScoreRunRecords(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Hour)
	params := `{"limit":25}`

	records := []schema.SnapshotRunRecord{
		{RunID: 7, StartTime: now, EndTime: &end, PackageCount: 3, ConfigParams: &params},
	}

	converted := ConvertScoreRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(3), converted[0].PackageCount)
	assert.Equal(t, &end, converted[0].EndTime)
	assert.Equal(t, &params, converted[0].ConfigParams)
}

func TestConvertPackageScoreRecords(t *testing.T) {
	now := time.Now()
	records := []schema.SnapshotScoreRecord{
		{
			RunID:           7,
			PackageName:     "lodash",
			RecordedAt:      now,
			Score:           68,
			WeeklyDownloads: 50_000_000,
			BundleSize:      71_000,
			LastCommitDays:  45,
			SecurityIssues:  1,
			Deprecated:      false,
		},
	}

	converted := ConvertPackageScoreRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "lodash", converted[0].PackageName)
	assert.Equal(t, int32(68), converted[0].Score)
	assert.Equal(t, int64(50_000_000), converted[0].WeeklyDownloads)
}
