package cmd

import (
	"fmt"
	"io"

	"docker-up/feature/stack"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// printReport writes report as indented JSON to w, or logs one line per
// result when the output format is log.
func printReport(l *zap.Logger, w io.Writer, report *stack.Report) error {
	if report == nil {
		return nil
	}
	if outputFormat == "json" {
		return writeJSON(w, report)
	}

	for _, r := range report.Results {
		fields := []zap.Field{
			zap.String("kind", r.Kind),
			zap.String("name", r.Name),
			zap.String("status", r.Status),
			zap.Duration("duration", r.Duration),
		}
		if r.Error != "" {
			fields = append(fields, zap.String("error", r.Error))
		}
		if len(r.Drift) > 0 {
			fields = append(fields, zap.Strings("drift", r.Drift))
		}
		l.Info("Stack "+report.Action+" result", fields...)
	}
	l.Info("Stack "+report.Action+" report",
		zap.String("run_id", report.RunID),
		zap.String("namespace", report.Namespace),
		zap.Int("resources", len(report.Results)),
	)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
