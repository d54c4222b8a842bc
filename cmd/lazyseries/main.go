// Command lazyseries prints coefficients of gallery series over QQ.
//
// Every gallery series is built, snapshotted into an in-memory catalog and
// restored into a fresh engine before printing, so the output also shows
// that snapshots round-trip.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/on-the-ground/lazy_series_go/catalog"
	"github.com/on-the-ground/lazy_series_go/gallery"
	"github.com/on-the-ground/lazy_series_go/log"
	"github.com/on-the-ground/lazy_series_go/ring"
	"github.com/on-the-ground/lazy_series_go/series"
)

func main() {
	name := flag.String("series", "catalan", "gallery series to print")
	terms := flag.Int("terms", 10, "number of coefficients to print")
	sparse := flag.Bool("sparse", false, "use sparse coefficient caches")
	list := flag.Bool("list", false, "list the stored series and exit")
	snapshot := flag.Bool("snapshot", false, "print the stored JSON snapshot instead of coefficients")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := log.LevelWarn
	if *verbose {
		level = log.LevelDebug
	}
	logger := log.NewConsole(level)
	defer log.Sync(logger)

	if err := run(os.Stdout, logger, *name, *terms, *sparse, *list, *snapshot); err != nil {
		fmt.Fprintln(os.Stderr, "lazyseries:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, logger *zap.Logger, name string, terms int, sparse, list, snapshot bool) error {
	cfg := series.DefaultConfig()
	cfg.Logger = logger
	cfg.InternCapacity = 1 << 12

	builder, err := series.New(ring.Rationals(), cfg)
	if err != nil {
		return err
	}
	defer builder.Close()

	store, err := catalog.New()
	if err != nil {
		return err
	}
	for _, n := range gallery.Names() {
		s, err := gallery.Build(builder, n, sparse)
		if err != nil {
			return fmt.Errorf("build %s: %w", n, err)
		}
		entry, err := catalog.Save(store, n, s)
		if err != nil {
			return err
		}
		logger.Debug("stored series", zap.String("name", n), zap.Int("nodes", entry.Nodes), zap.Duration("took", entry.Span.Duration()))
	}

	if list {
		entries, err := store.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-14s %s  %d nodes  %d bytes\n", e.Name, e.Ring, e.Nodes, len(e.Data))
		}
		return nil
	}

	if snapshot {
		entry, err := store.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(entry.Data))
		return nil
	}

	reader, err := series.New(ring.Rationals(), series.Config{Logger: logger})
	if err != nil {
		return err
	}
	gallery.Register(reader)
	s, err := catalog.Load(store, name, reader)
	if err != nil {
		return err
	}
	coeffs, err := s.Slice(series.From(0), series.Until(terms))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n", name, format(coeffs))
	return nil
}

func format(coeffs []*big.Rat) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = c.RatString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
