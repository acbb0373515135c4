package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordExportDataset() Dataset {
	return Dataset{
		Headers: []string{"Time", "Student", "Change", "Reason", "Final Points"},
		Rows: []map[string]string{
			{"Time": "2026-03-01 09:30:00", "Student": "小明", "Change": "-20", "Reason": "兑换: 免作业卡", "Final Points": "5"},
			{"Time": "2026-03-01 10:00:00", "Student": "小红", "Change": "-10", "Reason": "幸运大转盘抽奖", "Final Points": "30"},
		},
	}
}

func TestPDFExporterRendersCJKRows(t *testing.T) {
	exporter := NewPDFExporter("")

	payload, err := exporter.Render(recordExportDataset(), "Points History")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestPDFExporterMissingFontFile(t *testing.T) {
	exporter := NewPDFExporter("testdata/missing.ttf")

	_, err := exporter.Render(recordExportDataset(), "Points History")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf export font")
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter("")

	_, err := exporter.Render(Dataset{}, "")
	assert.Error(t, err)
}
