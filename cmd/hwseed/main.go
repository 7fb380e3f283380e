package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/slashdevops/hwseed"
	"github.com/slashdevops/hwseed/internal/config"
	"github.com/slashdevops/hwseed/internal/version"
)

const applicationName = "hwseed"

// componentReport is the per-component output of the CLI.
type componentReport struct {
	Component string `json:"component"`
	Seed      string `json:"seed"`
	Serial    string `json:"serial"`
	MAC       string `json:"mac"`
	UUID      string `json:"uuid"`
}

func main() {
	// Store options
	storeName := flag.String("store", "", "Seed store backend: memory, file, sqlite, postgres, s3 (overrides HWSEED_STORE)")
	storePath := flag.String("path", "", "Record path for file and sqlite stores (overrides HWSEED_STORE_PATH)")
	reset := flag.Bool("reset", false, "Delete the persisted seed record before initializing")

	// Seed actions
	seed := flag.String("seed", "", "Override the master seed (decimal or 0x-prefixed hex)")
	rotate := flag.Bool("rotate-session", false, "Regenerate the session seed")
	vm := flag.Bool("vm", false, "Collect only CPU and system UUID as hardware entropy")

	// Output options
	component := flag.String("component", "", "Comma-separated components to print (default: all)")
	serialLen := flag.Int("serial-len", 20, "Length of generated serial strings")
	charset := flag.String("charset", hwseed.CharsetAlphanumeric, "Character set for serial strings")
	jsonOutput := flag.Bool("json", false, "Output result as JSON")
	showRecord := flag.Bool("record", false, "Print the seed record")
	showMetrics := flag.Bool("metrics", false, "Print Prometheus metrics to stderr on exit")

	// Info flags
	versionFlag := flag.Bool("version", false, "Show version information")
	versionLongFlag := flag.Bool("version.long", false, "Show detailed version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hwseed - Deterministic pseudo hardware identities from a persisted seed\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  hwseed [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hwseed                                   Print identities of all components\n")
		fmt.Fprintf(os.Stderr, "  hwseed -component cpu,disk -json         Selected components as JSON\n")
		fmt.Fprintf(os.Stderr, "  hwseed -seed 0xDEADBEEF                  Override the master seed\n")
		fmt.Fprintf(os.Stderr, "  hwseed -store sqlite -path ./seed.db     Keep the record in SQLite\n")
		fmt.Fprintf(os.Stderr, "  hwseed -reset                            Start over with a new record\n")
		fmt.Fprintf(os.Stderr, "  hwseed -version                          Show version\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Short(applicationName))
		os.Exit(0)
	}

	if *versionLongFlag {
		fmt.Println(version.Long(applicationName))
		os.Exit(0)
	}

	cfg, err := config.Parse()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *storeName != "" {
		cfg.Store = *storeName
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	components, err := parseComponents(*component)
	if err != nil {
		logger.Error("invalid component", "error", err)
		flag.Usage()
		os.Exit(1)
	}

	var userSeed uint32
	if *seed != "" {
		userSeed, err = parseSeed(*seed)
		if err != nil {
			logger.Error("invalid seed", "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open seed store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}

	if *reset {
		if err := store.Clear(ctx); err != nil {
			logger.Error("failed to clear seed record", "error", err)
			os.Exit(1)
		}
	}

	entropy := hwseed.NewHardwareEntropy().WithLogger(logger)
	if *vm {
		entropy.VMFriendly()
	}

	registry := prometheus.NewRegistry()
	seeder := hwseed.New().
		WithStore(store).
		WithEntropy(entropy).
		WithLogger(logger).
		WithMetrics(hwseed.NewMetrics(registry)).
		WithTimeout(cfg.StoreTimeout)
	defer seeder.Cleanup()

	if err := seeder.Initialize(ctx); err != nil {
		logger.Warn("seed system running without persistence", "error", err)
	}

	if *seed != "" {
		if err := seeder.SetUserSeed(ctx, userSeed); err != nil {
			logger.Warn("user seed applied but not persisted", "error", err)
		}
	}

	if *rotate {
		seeder.RegenerateSessionSeed()
	}

	reports := buildReports(seeder, components, *serialLen, *charset)

	if *jsonOutput {
		output := map[string]any{"components": reports}
		if *showRecord {
			output["record"] = formatRecord(seeder.Record())
		}
		printJSON(os.Stdout, output)
	} else {
		printText(os.Stdout, reports)
		if *showRecord {
			printRecord(os.Stdout, seeder.Record())
		}
	}

	if *showMetrics {
		if err := writeMetrics(os.Stderr, registry); err != nil {
			logger.Error("failed to write metrics", "error", err)
		}
	}
}

// parseComponents resolves a comma-separated list; an empty list means all.
func parseComponents(list string) ([]hwseed.Component, error) {
	if strings.TrimSpace(list) == "" {
		return hwseed.Components(), nil
	}

	var out []hwseed.Component
	for name := range strings.SplitSeq(list, ",") {
		c, err := hwseed.ParseComponent(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// parseSeed accepts decimal, 0x hex, 0o octal or 0b binary 32-bit values.
func parseSeed(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("seed %q: %w", s, err)
	}

	return uint32(v), nil
}

func buildReports(seeder *hwseed.Seeder, components []hwseed.Component, serialLen int, charset string) []componentReport {
	reports := make([]componentReport, 0, len(components))
	for _, c := range components {
		reports = append(reports, componentReport{
			Component: c.String(),
			Seed:      fmt.Sprintf("0x%08X", seeder.ComponentSeed(c)),
			Serial:    seeder.Serial(c, serialLen, charset),
			MAC:       seeder.MAC(c).String(),
			UUID:      seeder.UUID(c).String(),
		})
	}

	return reports
}

func formatRecord(rec hwseed.Record) map[string]any {
	return map[string]any{
		"masterSeed":   fmt.Sprintf("0x%08X", rec.MasterSeed),
		"sessionSeed":  fmt.Sprintf("0x%08X", rec.SessionSeed),
		"hardwareSeed": fmt.Sprintf("0x%08X", rec.HardwareSeed),
		"created":      rec.Created(),
		"bootCount":    rec.BootCount,
	}
}

func printText(w io.Writer, reports []componentReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "%-12s seed=%s serial=%s mac=%s uuid=%s\n", r.Component, r.Seed, r.Serial, r.MAC, r.UUID)
	}
}

func printRecord(w io.Writer, rec hwseed.Record) {
	fmt.Fprintln(w, "\nRecord:")
	fmt.Fprintf(w, "  Master seed:   0x%08X\n", rec.MasterSeed)
	fmt.Fprintf(w, "  Session seed:  0x%08X\n", rec.SessionSeed)
	fmt.Fprintf(w, "  Hardware seed: 0x%08X\n", rec.HardwareSeed)
	fmt.Fprintf(w, "  Created:       %s\n", rec.Created().Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(w, "  Boot count:    %d\n", rec.BootCount)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("failed to encode JSON", "error", err)
		os.Exit(1)
	}
}

// writeMetrics renders every gathered family in Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}
