package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mahdiidarabi/hashhunt/internal/bruteforce"
	"github.com/mahdiidarabi/hashhunt/internal/logging"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/mahdiidarabi/hashhunt/pkg/hashhunt"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	cmdName   = "hashhunt"
	envPrefix = "HASHHUNT"
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	v := viper.New()
	var notFoundCode int

	cmd := newRootCommand(v, stdout, stderr, &notFoundCode)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err == nil {
				return ee.code, nil
			}
			return ee.code, ee.err
		}
		return 1, err
	}
	return 0, nil
}

func newRootCommand(v *viper.Viper, stdout, stderr io.Writer, notFoundCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   cmdName,
		Short: "Search a secp256k1 key window for a HASH160 target",
		Long: `Search every private key in [2^(b-1), 2^b) for one whose public key
HASH160 equals the target read from the settings file. The first line of the
settings file is the bit length b, the second the 40 hex character target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, stdout, stderr, notFoundCode)
		},
	}

	flags := cmd.Flags()
	flags.String("settings", "settings.txt", "Path to the settings file")
	flags.String("found-file", hashhunt.DefaultFoundFile, "File that found keys are appended to")
	flags.Int("workers", 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")
	flags.Int("batch-size", curve.DefaultBatchSize, "Keys per batch inversion")
	flags.String("mode", "batch", "Key generation mode (batch or sequential)")
	flags.String("remainder", "last", "Where leftover keys go when the range does not split evenly (last or reject)")
	flags.Bool("uncompressed", false, "Hash the uncompressed 65-byte public key")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", logging.CONSOLE, "Log format (console, json, logfmt)")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
	flags.Bool("progress", false, "Show a progress bar on standard error")
	flags.Int("exit-code-not-found", 0, "Exit code when the range is exhausted without a match")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, v *viper.Viper, stdout, stderr io.Writer, notFoundCode *int) error {
	logger, err := logging.New(cmdName, logging.Config{
		Format: v.GetString("log-format"),
		Level:  v.GetString("log-level"),
		Writer: stderr,
	})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	config, err := searchConfig(v)
	if err != nil {
		return err
	}

	client := hashhunt.NewClient().
		WithConfig(config).
		WithLogger(logger).
		WithStore(hashhunt.NewFileStore(v.GetString("found-file"))).
		WithProgress(v.GetBool("progress"))

	if addr := v.GetString("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		client.WithMetrics(hashhunt.NewMetrics(reg))
		srv := serveMetrics(addr, reg, logger)
		defer srv.Close()
	}

	began := time.Now()
	summary, err := client.HuntFile(ctx, v.GetString("settings"))
	if err != nil {
		if summary != nil && errors.Is(err, context.Canceled) {
			logger.Warnw("search interrupted", "checked", summary.Checked)
			return &exitError{code: 130, err: err}
		}
		return err
	}

	printSummary(stdout, summary, time.Since(began))
	if summary.Found == nil {
		return &exitError{code: v.GetInt("exit-code-not-found")}
	}
	return nil
}

func searchConfig(v *viper.Viper) (hashhunt.SearchConfig, error) {
	config := hashhunt.DefaultSearchConfig()

	mode, err := bruteforce.ParseMode(v.GetString("mode"))
	if err != nil {
		return config, err
	}
	remainder, err := bruteforce.ParseRemainderPolicy(v.GetString("remainder"))
	if err != nil {
		return config, err
	}

	config.NumWorkers = v.GetInt("workers")
	config.BatchSize = v.GetInt("batch-size")
	config.Mode = mode
	config.Remainder = remainder
	config.Uncompressed = v.GetBool("uncompressed")
	if config.NumWorkers < 0 {
		return config, errors.Errorf("--workers must not be negative, got %d", config.NumWorkers)
	}
	if config.BatchSize < 1 {
		return config, errors.Errorf("--batch-size must be positive, got %d", config.BatchSize)
	}
	return config, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.SugaredLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	logger.Infow("serving metrics", "addr", addr)
	return srv
}

func printSummary(w io.Writer, s *hashhunt.Summary, total time.Duration) {
	if s.Found == nil {
		fmt.Fprintf(w, "\n[-] No match in %s keys\n", s.Width.String())
	} else {
		r := s.Found
		fmt.Fprintf(w, "\n[+] Found private key!\n")
		fmt.Fprintf(w, "    Private key (dec): %s\n", r.PrivateKey.Text(10))
		fmt.Fprintf(w, "    Private key (hex): %s\n", r.Keys.PrivateKeyHex)
		fmt.Fprintf(w, "    HASH160:           %s\n", r.Digest.String())
		fmt.Fprintf(w, "    WIF:               %s\n", r.Keys.WIF)
		fmt.Fprintf(w, "    P2PKH:             %s\n", r.Keys.P2PKH)
		if r.Keys.Bech32 != "" {
			fmt.Fprintf(w, "    P2SH-P2WPKH:       %s\n", r.Keys.P2SHP2WPKH)
			fmt.Fprintf(w, "    Bech32:            %s\n", r.Keys.Bech32)
		}
	}
	fmt.Fprintf(w, "    Keys checked: %d (%.0f keys/s)\n", s.Checked, s.KeysPerSecond())
	fmt.Fprintf(w, "    Elapsed: %s\n", total.Round(time.Millisecond))
}
