package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/anydialect-backend/internal/app"
)

func newAuditCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the translation audit trail",
	}
	cmd.AddCommand(newAuditTailCommand(flags))
	return cmd
}

func newAuditTailCommand(flags *Flags) *cobra.Command {
	var (
		uid   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent audit records",
		Long: `Tail lists the newest records from the configured SQL audit sink
(postgres or sqlite), newest first. Airtable is not queryable from here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be > 0")
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			store, closer, err := app.OpenAuditStore(ctx, cfg, flags.logger(cmd))
			if err != nil {
				return err
			}
			defer closer.Close()

			records, err := store.ListRecent(ctx, uid, limit)
			if err != nil {
				return fmt.Errorf("list audit records: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tSTATUS\tUID\tTARGET\tFORMALITY\tTEXT\tTRANSLATION")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					rec.CreatedAt.UTC().Format(time.RFC3339),
					rec.Status,
					orDash(rec.UID),
					orDash(rec.TargetLanguage),
					orDash(rec.Formality),
					truncate(rec.Text, 40),
					orDash(truncate(rec.Translation, 40)),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "only records for this user id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
