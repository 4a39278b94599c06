package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/config"
	"github.com/fiscalio/fiscalio/internal/output"
	"github.com/fiscalio/fiscalio/internal/regime"
	"github.com/fiscalio/fiscalio/internal/server"
	"github.com/fiscalio/fiscalio/internal/strategy"
)

// cliLogger implements calculation.Logger using the standard log package
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	baremeFile string
	fiscalYear int
	format     string
	outFile    string
)

func loadRegistry() (*bareme.Registry, error) {
	if baremeFile != "" {
		return bareme.LoadFromFile(baremeFile)
	}
	return bareme.DefaultRegistry(), nil
}

func resolveBareme(reg *bareme.Registry) (*bareme.Bareme, error) {
	year := fiscalYear
	if year == 0 {
		years := reg.Years()
		year = years[len(years)-1]
	}
	return reg.ForYear(year)
}

func openOutput() (*os.File, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

var rootCmd = &cobra.Command{
	Use:   "fiscalio",
	Short: "French tax estimation engine",
	Long:  "Progressive income-tax computation, regime comparison and optimization recommendations for independents and households",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [request-file]",
	Short: "Compute the income tax for a fiscal profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		b, err := resolveBareme(reg)
		if err != nil {
			return err
		}

		result, err := calculation.NewEngine(b).Calculate(req.Profile)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput()
		if err != nil {
			return err
		}
		defer closeFn()

		switch format {
		case "console":
			fmt.Fprint(w, output.RenderResult(result))
			return nil
		case "json":
			return output.WriteJSON(w, result)
		case "pdf":
			return output.WriteResultPDF(w, req.Profile, result)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [request-file]",
	Short: "Compute the tax and rank savings recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		b, err := resolveBareme(reg)
		if err != nil {
			return err
		}

		result, err := calculation.NewEngine(b).Calculate(req.Profile)
		if err != nil {
			return err
		}
		opt, err := strategy.NewOrchestrator(b, strategy.DefaultRules()).Optimize(result, req.Profile, req.Context)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput()
		if err != nil {
			return err
		}
		defer closeFn()

		switch format {
		case "console":
			fmt.Fprint(w, output.RenderResult(result))
			fmt.Fprintln(w)
			fmt.Fprint(w, output.RenderOptimization(opt))
			return nil
		case "json":
			return output.WriteJSON(w, server.OptimizationResponse{Result: result, Optimization: opt})
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var regimeCmd = &cobra.Command{
	Use:   "regime [request-file]",
	Short: "Compare the micro and réel accounting regimes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		b, err := resolveBareme(reg)
		if err != nil {
			return err
		}

		cmp, err := regime.NewComparator(b).Compare(req.Profile)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput()
		if err != nil {
			return err
		}
		defer closeFn()

		switch format {
		case "console":
			fmt.Fprint(w, output.RenderComparison(cmp))
			return nil
		case "json":
			return output.WriteJSON(w, cmp)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment variables win either way.
		_ = godotenv.Load()

		if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
			if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Release: version}); err != nil {
				return fmt.Errorf("sentry init failed: %w", err)
			}
			log.Printf("sentry error reporting enabled")
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = ":8080"
			if port := os.Getenv("PORT"); port != "" {
				addr = ":" + port
			}
		}

		srv := server.New(reg, cliLogger{})
		log.Printf("fiscalio %s listening on %s (years %v)", version, addr, reg.Years())
		return fasthttp.ListenAndServe(addr, srv.Handler)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fiscalio %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&baremeFile, "bareme", "", "YAML bareme file (defaults to the built-in tables)")
	rootCmd.PersistentFlags().IntVar(&fiscalYear, "year", 0, "fiscal year (defaults to the latest loaded)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "console", "output format: console, json or pdf")
	rootCmd.PersistentFlags().StringVar(&outFile, "output", "", "write output to a file instead of stdout")

	serveCmd.Flags().String("addr", "", "listen address (defaults to :8080 or $PORT)")

	rootCmd.AddCommand(calculateCmd, optimizeCmd, regimeCmd, serveCmd, versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
