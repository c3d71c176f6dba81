package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/fohlcv/internal/types"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupSuite() {
	tempDir, err := os.MkdirTemp("", "duckdb-writer-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
}

func (suite *DuckDBWriterTestSuite) TearDownSuite() {
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *DuckDBWriterTestSuite) testBar(offset int) types.MarketData {
	base := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)

	return types.MarketData{
		Time:   base.Add(time.Duration(offset) * time.Minute),
		Open:   150.0 + float64(offset),
		High:   155.0 + float64(offset),
		Low:    148.0 + float64(offset),
		Close:  152.0 + float64(offset),
		Volume: 1000000.0 + float64(offset*100),
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)

	suite.NotNil(writer)

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Equal(outputPath, duckWriter.outputPath)
	suite.Equal(FormatParquet, duckWriter.format)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestInitialize() {
	outputPath := filepath.Join(suite.tempDir, "test_init.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)

	err := writer.Initialize()
	suite.NoError(err)

	duckWriter := writer.(*DuckDBWriter)
	suite.NotNil(duckWriter.db)
	suite.NotNil(duckWriter.tx)
	suite.NotNil(duckWriter.stmt)

	writer.Close()
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	outputPath := filepath.Join(suite.tempDir, "test_no_init.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)

	err := writer.Write(suite.testBar(0))
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	outputPath := filepath.Join(suite.tempDir, "test_fin_no_init.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestWriteAndFinalizeParquet() {
	outputPath := filepath.Join(suite.tempDir, "test_write.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)

	suite.Require().NoError(writer.Initialize())

	for i := 0; i < 10; i++ {
		suite.NoError(writer.Write(suite.testBar(i)))
	}

	path, err := writer.Finalize()
	suite.NoError(err)
	suite.Equal(outputPath, path)
	suite.NoError(writer.Close())

	info, err := os.Stat(outputPath)
	suite.NoError(err)
	suite.Greater(info.Size(), int64(0))
}

func (suite *DuckDBWriterTestSuite) TestWriteAndFinalizeCSV() {
	outputPath := filepath.Join(suite.tempDir, "test_write.csv")
	writer := NewDuckDBWriter(outputPath, FormatCSV)

	suite.Require().NoError(writer.Initialize())
	suite.NoError(writer.Write(suite.testBar(0)))

	path, err := writer.Finalize()
	suite.NoError(err)
	suite.Equal(outputPath, path)
	suite.NoError(writer.Close())

	content, err := os.ReadFile(outputPath)
	suite.NoError(err)
	suite.Contains(string(content), "time,open,high,low,close,volume")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeCreatesParentDir() {
	outputPath := filepath.Join(suite.tempDir, "nested", "dir", "bars.csv")
	writer := NewDuckDBWriter(outputPath, FormatCSV)

	suite.Require().NoError(writer.Initialize())
	suite.NoError(writer.Write(suite.testBar(0)))

	_, err := writer.Finalize()
	suite.NoError(err)
	suite.NoError(writer.Close())

	_, err = os.Stat(outputPath)
	suite.NoError(err)
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "never.parquet"), FormatParquet)
	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestGetOutputPath() {
	outputPath := filepath.Join(suite.tempDir, "path.parquet")
	writer := NewDuckDBWriter(outputPath, FormatParquet)
	suite.Equal(outputPath, writer.GetOutputPath())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"parquet", FormatParquet, false},
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" parquet ", FormatParquet, false},
		{"xlsx", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	if FormatParquet.Ext() != ".parquet" {
		t.Fatalf("unexpected parquet extension: %s", FormatParquet.Ext())
	}

	if FormatCSV.Ext() != ".csv" {
		t.Fatalf("unexpected csv extension: %s", FormatCSV.Ext())
	}
}
