package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/anydialect-backend/internal/app"
	"github.com/heartmarshall/anydialect-backend/internal/audit"
	"github.com/heartmarshall/anydialect-backend/internal/config"
	"github.com/heartmarshall/anydialect-backend/internal/domain"
	"github.com/heartmarshall/anydialect-backend/internal/service/translation"
)

const auditDrainTimeout = 10 * time.Second

type translateOptions struct {
	from      string
	to        string
	dialect   string
	formality string
	speaker   string
	listener  string
	uid       string
	email     string
	plain     bool
	noAudit   bool
}

func newTranslateCommand(flags *Flags) *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text with the configured completion provider",
		Long: `Translate sends one request through the same pipeline as POST /translate
and prints the structured response as JSON. Text is taken from the
arguments or, when none are given, from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runTranslate(cmd, flags, opts, text)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "source language (empty means auto-detect)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "target language (required)")
	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "target dialect, e.g. Kansai")
	cmd.Flags().StringVar(&opts.formality, "formality", "", "superior, stranger, friend, child or none")
	cmd.Flags().StringVar(&opts.speaker, "speaker", "", "speaker pronouns")
	cmd.Flags().StringVar(&opts.listener, "listener", "", "listener pronouns")
	cmd.Flags().StringVar(&opts.uid, "uid", "", "user id recorded in the audit trail")
	cmd.Flags().StringVar(&opts.email, "email", "", "user email recorded in the audit trail")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print only the translated text")
	cmd.Flags().BoolVar(&opts.noAudit, "no-audit", false, "skip the audit sink")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runTranslate(cmd *cobra.Command, flags *Flags, opts *translateOptions, text string) error {
	var overrides []func(*config.Config)
	if opts.noAudit {
		// The sink is never opened, so its settings must not fail validation.
		overrides = append(overrides, func(c *config.Config) { c.Audit.Sink = config.SinkNone })
	}
	cfg, err := flags.loadConfig(overrides...)
	if err != nil {
		return err
	}
	logger := flags.logger(cmd)
	ctx := commandContext(cmd)

	provider, err := app.NewCompletionProvider(cfg.Completion, logger)
	if err != nil {
		return fmt.Errorf("completion provider: %w", err)
	}

	var sink audit.Sink = audit.Discard{}
	var sinkCloser io.Closer
	if !opts.noAudit {
		sink, sinkCloser, err = app.NewAuditSink(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("audit sink: %w", err)
		}
		defer sinkCloser.Close()
	}

	dispatcher := audit.NewDispatcher(sink, audit.Config{
		QueueSize:    1,
		Workers:      1,
		WriteTimeout: cfg.Audit.WriteTimeout,
	}, logger)

	svc := translation.NewService(logger, provider, dispatcher, cfg.Completion.Timeout)

	resp, translateErr := svc.Translate(ctx, domain.TranslationRequest{
		Text:             text,
		SourceLanguage:   opts.from,
		TargetLanguage:   opts.to,
		TargetDialect:    opts.dialect,
		SpeakerPronouns:  opts.speaker,
		ListenerPronouns: opts.listener,
		Formality:        domain.Formality(opts.formality),
		UID:              opts.uid,
		UserEmail:        opts.email,
	})

	drainCtx, cancel := context.WithTimeout(context.Background(), auditDrainTimeout)
	defer cancel()
	if err := dispatcher.Close(drainCtx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else {
		for auditErr := range dispatcher.Errors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", auditErr)
		}
	}

	if translateErr != nil {
		return describeError(translateErr)
	}

	out := cmd.OutOrStdout()
	if opts.plain {
		_, err = fmt.Fprintln(out, resp.Translation)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

func readText(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// describeError flattens validation failures into one readable line.
func describeError(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}
