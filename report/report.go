package report

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/sequencer"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	TextFileName = "ran_test_report.txt"
	HTMLFileName = "ran_test_report.html"
)

// Header identifies the test list a report belongs to.
type Header struct {
	Name    string
	TabRef  string
	TabName string
}

// Report is the rendered outcome of one sequence run.
type Report struct {
	RunID    string
	Header   Header
	Summary  sequencer.Summary
	Duration time.Duration
}

// New ...
func New(header Header, summary sequencer.Summary, duration time.Duration) Report {
	return Report{
		RunID:    uuid.New().String(),
		Header:   header,
		Summary:  summary,
		Duration: duration,
	}
}

// Result is the overall verdict as a word.
func (r Report) Result() string {
	if r.Summary.Passed {
		return "PASSED"
	}
	return "FAILED"
}

func (r Report) title() string {
	title := r.Header.Name
	if title == "" {
		title = "RAN test"
	}
	if r.Header.TabName != "" {
		title = fmt.Sprintf("%s (%s)", title, r.Header.TabName)
	}
	return fmt.Sprintf("%s: %s in %s", title, r.Result(), formatDuration(r.Duration))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}

func (r Report) casesTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("%s", r.title())
	t.AppendHeader(table.Row{"ID", "Description", "Action", "Status", "Duration", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Description", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Message", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, row := range r.Summary.Rows {
		message := append([]string{row.Result.Message}, row.Result.Details...)
		t.AppendRow(table.Row{
			row.TestCase.ID,
			row.TestCase.Description,
			row.TestCase.Action,
			string(row.Status),
			formatDuration(row.Duration),
			strings.Join(message, "\n"),
		})
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d cases", len(r.Summary.Rows)),
		"",
		r.Result(),
		formatDuration(r.Duration),
		fmt.Sprintf("passed %d, failed %d, tolerated %d, skipped %d, invalid %d",
			r.Summary.Count(sequencer.StatusPassed),
			r.Summary.Count(sequencer.StatusFailed),
			r.Summary.Count(sequencer.StatusTolerated),
			r.Summary.Count(sequencer.StatusSkipped),
			r.Summary.Count(sequencer.StatusInvalid)),
	})
	return t
}

func extraTable(id string, data testcase.Table) table.Writer {
	t := table.NewWriter()
	t.SetTitle("%s %s", id, data.Title)

	header := table.Row{}
	for _, h := range data.Header {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, values := range data.Rows {
		row := table.Row{}
		for _, v := range values {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	return t
}

// tables returns the case table followed by the tables attached to results.
func (r Report) tables() []table.Writer {
	tables := []table.Writer{r.casesTable()}
	for _, row := range r.Summary.Rows {
		for _, data := range row.Result.Tables {
			tables = append(tables, extraTable(row.TestCase.ID, data))
		}
	}
	return tables
}

// Text renders the report as plain text tables.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	if r.Header.TabRef != "" {
		fmt.Fprintf(&b, "Tab: %s\n", r.Header.TabRef)
	}
	for _, t := range r.tables() {
		t.SetStyle(table.StyleLight)
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the report as a standalone page.
func (r Report) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(r.title()))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(r.title()))
	fmt.Fprintf(&b, "<p>Run ID: %s</p>\n", html.EscapeString(r.RunID))
	if r.Header.TabRef != "" {
		fmt.Fprintf(&b, "<p id=\"%s\">Tab: %s</p>\n", html.EscapeString(r.Header.TabRef), html.EscapeString(r.Header.TabName))
	}
	for _, t := range r.tables() {
		b.WriteString(t.RenderHTML())
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// Writer prints reports and stores them on disk.
type Writer interface {
	Print(r Report)
	Write(r Report, dir string) (string, string, error)
}

type writer struct {
	logger      log.Logger
	fileManager fileutil.FileManager
}

// NewWriter ...
func NewWriter(logger log.Logger, fileManager fileutil.FileManager) Writer {
	return &writer{
		logger:      logger,
		fileManager: fileManager,
	}
}

func (w writer) Print(r Report) {
	t := r.casesTable()
	if r.Summary.Passed {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	w.logger.Println()
	w.logger.Printf("%s", t.Render())
}

// Write stores the text and HTML reports in dir, returning their paths.
func (w writer) Write(r Report, dir string) (string, string, error) {
	textPath := filepath.Join(dir, TextFileName)
	if err := w.fileManager.Write(textPath, r.Text(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report (%s): %w", textPath, err)
	}

	htmlPath := filepath.Join(dir, HTMLFileName)
	if err := w.fileManager.Write(htmlPath, r.HTML(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report (%s): %w", htmlPath, err)
	}

	return textPath, htmlPath, nil
}
