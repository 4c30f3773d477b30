// Package report 把 runner 的结果渲染成 markdown 表格或 JSON。
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"perf-benchmarks/runner"
)

var ErrUnknownFormat = errors.New("report: unknown format")

func Write(w io.Writer, format string, results []runner.Result) error {
	switch format {
	case "table":
		return Table(w, results)
	case "json":
		return JSON(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var headers = []string{"Method", "Mean", "Median", "StdDev", "Allocated", "Allocs"}

// Table 输出与 BenchmarkDotNet 类似的 markdown 表格，失败的用例在 Mean 列显示错误。
func Table(w io.Writer, results []runner.Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			rows = append(rows, []string{r.Name, "error: " + r.Err.Error(), "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			r.Name,
			FormatNs(r.Mean),
			FormatNs(r.Median),
			FormatNs(r.StdDev),
			FormatBytes(r.BytesPerOp),
			fmt.Sprintf("%d", r.AllocsPerOp),
		})
	}
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

type jsonResult struct {
	runner.Result
	Error string `json:"error,omitempty"`
}

func JSON(w io.Writer, results []runner.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{Result: r}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		out = append(out, jr)
	}
	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// FormatNs 按量级选择 ns、us、ms、s。
func FormatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.1f ns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.3f us", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.3f ms", ns/1e6)
	default:
		return fmt.Sprintf("%.3f s", ns/1e9)
	}
}

func FormatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
