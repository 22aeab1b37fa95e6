package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTaskReportReturnsRealPath(t *testing.T) {
	dir := t.TempDir()
	g := NewReportGenerator(dir, "")

	due := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	path, err := g.GenerateTaskReport(TaskReportData{
		CompanyName: "Acme",
		GeneratedAt: due,
		Rows: []TaskReportRow{
			{ID: 1, Title: "Invoice May", Assignee: "Ivan", Status: "new", Priority: "high", DueDate: &due},
			{ID: 2, Title: "Quarterly report", Assignee: "Olga", Status: "done", Priority: "normal"},
		},
		CountByStat: map[string]int{"new": 1, "done": 1},
	})
	require.NoError(t, err)

	// возвращённый путь обязан указывать на реальный файл под RootDir
	assert.True(t, strings.HasPrefix(path, dir), "path %q not under %q", path, dir)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateTaskReportFilenameSanitized(t *testing.T) {
	dir := t.TempDir()
	g := NewReportGenerator(dir, "")

	path, err := g.GenerateTaskReport(TaskReportData{
		CompanyName: "Acme",
		GeneratedAt: time.Now(),
		Filename:    "../../escape.pdf",
		CountByStat: map[string]int{},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.pdf"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
