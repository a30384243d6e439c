package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamingbumblebee/biopaper-parser/internal/export"
	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
)

func sampleRecord() extract.PolymerRecord {
	return extract.PolymerRecord{
		SampleID:                      "TTT-PEMP",
		AromaticRingCount:             3,
		FusedRingPresence:             0,
		LinkageType:                   "C-S",
		StericBulk:                    "1",
		DegreeOfSulfonationOrGrafting: "UV-cured",
		CationType:                    "None",
		AcidicProton:                  0,
		AcidicProtonPosition:          "NA",
		WaterUptakePercent:            "N/A",
		KOHUptakePercent:              "N/A",
		FreeVolumeNm3PerG:             "N/A",
		SwellingDegreeAlkaline:        "Low",
		PorosityDescription:           "Gel-like",
		ConductivityOHmSPerCm:         0.589,
		TemperatureConductivityTested: 30,
		KOHConcentrationTestedM:       "~1",
		AgingTimeInAlkalineConditions: 0,
	}
}

func TestCSVPath(t *testing.T) {
	require.Equal(t, "paper_results.csv", export.CSVPath("paper.pdf"))
	require.Equal(t, "paper_results.csv", export.CSVPath(filepath.Join("some", "dir", "paper.pdf")))
	require.Equal(t, "paper_results.md", export.MarkdownPath("paper.pdf"))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	records := []extract.PolymerRecord{sampleRecord(), sampleRecord()}
	require.NoError(t, export.WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, extract.Header(), rows[0])
	require.Len(t, rows[0], 18)
	require.Equal(t, "TTT-PEMP", rows[1][0])
	require.Equal(t, "0.589", rows[1][14])
	require.Equal(t, "30", rows[1][15])
}

func TestWriteCSV_EmptyRecordsIsNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := export.WriteCSV(path, nil)
	require.ErrorIs(t, err, extract.ErrNoData)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestMarkdownTable(t *testing.T) {
	table := export.MarkdownTable(
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}},
	)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "| a | b |", lines[0])
	require.Equal(t, "| --- | --- |", lines[1])
	require.Equal(t, "| 1 | 2 |", lines[2])
	require.Equal(t, "| 3 | 4 |", lines[3])
}

func TestMarkdownTable_ShortRowsPadded(t *testing.T) {
	table := export.MarkdownTable([]string{"a", "b", "c"}, [][]string{{"1"}})
	require.Contains(t, table, "| 1 |  |  |")
}
