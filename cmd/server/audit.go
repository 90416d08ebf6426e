package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mandag122/WeeVora/internal/models"
)

var (
	auditFormat string
	auditStrict bool
)

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svc, err := newCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	diags, err := svc.Diagnostics(ctx)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), auditFormat, diags); err != nil {
		return err
	}
	if auditStrict && len(diags) > 0 {
		return fmt.Errorf("%d diagnostics reported", len(diags))
	}
	return nil
}

func writeDiagnostics(w io.Writer, format string, diags []models.Diagnostic) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"diagnostics": diags}); err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
		return enc.Close()
	case "text", "":
		if len(diags) == 0 {
			fmt.Fprintln(w, "no problems found")
			return nil
		}
		for _, d := range diags {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Table, d.RecordID, d.Field, d.Message)
		}
		fmt.Fprintf(w, "\n%d problems\n", len(diags))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}
