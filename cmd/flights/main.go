// Command flights loads a schedule of flights into an lptable.Table keyed
// by flight number and walks through lookups, iteration, growth and
// deletion, printing the table state along the way.
//
// Usage:
//
//	flights -config flights.toml [-delete 444] [-v]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llxisdsh/lptable"
)

// Flight is one scheduled flight.
type Flight struct {
	Number      int    `toml:"number"`
	Destination string `toml:"destination"`
	Origin      string `toml:"origin"`
}

func (f Flight) String() string {
	return fmt.Sprintf("Flight #%d to %s from %s", f.Number, f.Destination, f.Origin)
}

type schedule struct {
	Table   lptable.Config `toml:"table"`
	Flights []Flight       `toml:"flights"`
}

func loadSchedule(path string) (*schedule, error) {
	var s schedule
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, errors.Wrapf(err, "load schedule %q", path)
	}
	if err := s.Table.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "schedule %q", path)
	}
	return &s, nil
}

func main() {
	var (
		configPath = flag.String("config", "flights.toml", "schedule file")
		deleteNo   = flag.Int("delete", 444, "flight number to delete at the end")
		verbose    = flag.Bool("v", false, "log table resizes")
	)
	flag.Parse()

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*configPath, *deleteNo, os.Stdout, logger); err != nil {
		logger.Fatal("flights failed", zap.Error(err))
	}
}

func run(configPath string, deleteNo int, out io.Writer, logger *zap.Logger) error {
	s, err := loadSchedule(configPath)
	if err != nil {
		return err
	}
	logger.Info("loaded schedule",
		zap.String("path", configPath),
		zap.Int("flights", len(s.Flights)),
	)

	flights := lptable.New[int, Flight](
		lptable.WithConfig(s.Table),
		lptable.WithSentinelKey(0),
		lptable.WithLogger(logger.Named("table")),
	)

	half := len(s.Flights) / 2
	if err := add(flights, s.Flights[:half], out); err != nil {
		return err
	}

	for _, f := range s.Flights {
		if found, ok := flights.Find(f.Number); ok {
			fmt.Fprintln(out, found)
		} else {
			fmt.Fprintf(out, "Flight #%d not scheduled\n", f.Number)
		}
	}
	printSize(flights, out)

	if err := printAll(flights, out); err != nil {
		return err
	}

	if err := add(flights, s.Flights[half:], out); err != nil {
		return err
	}
	if err := printAll(flights, out); err != nil {
		return err
	}
	printSize(flights, out)

	fmt.Fprintf(out, "Deleting flight #%d\n", deleteNo)
	deleted, err := flights.Delete(deleteNo)
	if err != nil {
		return err
	}
	if !deleted {
		logger.Warn("flight not found", zap.Int("number", deleteNo))
	}
	printSize(flights, out)
	fmt.Fprint(out, flights.Stats().ToString())
	return nil
}

func add(t *lptable.Table[int, Flight], flights []Flight, out io.Writer) error {
	for _, f := range flights {
		fmt.Fprintf(out, "Adding %v\n", f)
		if _, err := t.Insert(f.Number, f); err != nil {
			return errors.WithMessagef(err, "add flight %v", f)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func printAll(t *lptable.Table[int, Flight], out io.Writer) error {
	it := t.Iterator()
	for it.Next() {
		fmt.Fprintln(out, it.Value())
	}
	fmt.Fprintln(out)
	return it.Err()
}

func printSize(t *lptable.Table[int, Flight], out io.Writer) {
	fmt.Fprintf(out, "Table size: %d\n", t.Size())
	fmt.Fprintf(out, "Table length: %d\n\n", t.Capacity())
}
