// Descriptive statistics tool

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmcloughlin/profile"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/descstat/base/descriptive"
	"example.com/descstat/base/floats"

	"example.com/descstat/benchmark"

	"example.com/descstat/core/config"
	"example.com/descstat/core/dataset"
	"example.com/descstat/core/server"
	"example.com/descstat/core/summary"
)

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

func runMonitor(log *zap.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, mux)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func readValues(name string) []float64 {
	fs, err := dataset.ReadFile(name)
	if err != nil {
		log.Fatal("failed to read values", zap.String("file", name), zap.Error(err))
	}
	return fs
}

func runMean(name string) {
	m, err := descriptive.Mean(readValues(name))
	if err != nil {
		log.Fatal("failed to compute mean", zap.Error(err))
	}
	fmt.Println(m)
}

func runMedian(name string, sorted bool) {
	fs := readValues(name)
	if !sorted {
		fs = floats.SortedCopy(fs)
	}
	m, err := descriptive.MedianFromSorted(fs)
	if err != nil {
		log.Fatal("failed to compute median", zap.Error(err))
	}
	fmt.Println(m)
}

func loadConfig(configFile string) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	return cfg
}

func runSummary(configFile string) {
	ctx := context.Background()
	cfg := loadConfig(configFile)
	s := summary.NewSummarizer(log, descriptive.Descriptive{})
	for _, ds := range cfg.Datasets {
		r, err := s.Summarize(ctx, ds.Name, readValues(ds.Path), ds.Sorted)
		if err != nil {
			log.Fatal("failed to summarize dataset", zap.String("dataset", ds.Name), zap.Error(err))
		}
		fmt.Printf("%s\tcount=%d\tmean=%v\tmedian=%v\n", r.Name, r.Count, r.Mean, r.Median)
	}
}

func runServer(configFile string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(configFile)
	if cfg.MetricsAddr != "" {
		go runMonitor(log, cfg.MetricsAddr)
	}

	s := summary.NewSummarizer(log, descriptive.Descriptive{})
	err := server.Serve(ctx, log, cfg.ListenAddr, server.NewHandler(log, s))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to serve", zap.Error(err))
	}
}

func runBenchmark(samples, length int, cpuProfile bool) {
	if cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	_ = benchmark.Run(log, benchmark.Config{
		Samples: samples,
		Length:  length,
		Seed:    1,
	})
}

func exitWithUsage() {
	fmt.Println("<command> <flags>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  mean [-verbose] <file>")
	fmt.Println("  median [-verbose] [-sorted] <file>")
	fmt.Println("  summary [-verbose] -config <file>")
	fmt.Println("  serve [-verbose] -config <file>")
	fmt.Println("  benchmark [-verbose] [-n <samples>] [-len <length>] [-profile]")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		sorted     bool
		samples    int
		length     int
		cpuProfile bool
	)

	meanFlags := flag.NewFlagSet("mean", flag.ExitOnError)
	medianFlags := flag.NewFlagSet("median", flag.ExitOnError)
	summaryFlags := flag.NewFlagSet("summary", flag.ExitOnError)
	serveFlags := flag.NewFlagSet("serve", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	meanFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")

	medianFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	medianFlags.BoolVar(&sorted, "sorted", false, "Input is already sorted in ascending order")

	summaryFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	summaryFlags.StringVar(&configFile, "config", "", "Config file")

	serveFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	serveFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.IntVar(&samples, "n", benchmark.DefaultSamples, "Number of samples")
	benchmarkFlags.IntVar(&length, "len", benchmark.DefaultLength, "Sequence length")
	benchmarkFlags.BoolVar(&cpuProfile, "profile", false, "Write a CPU profile")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case meanFlags.Name():
		err := meanFlags.Parse(os.Args[2:])
		if err != nil || meanFlags.NArg() != 1 {
			exitWithUsage()
		}
		initLogger(verbose)
		runMean(meanFlags.Arg(0))
	case medianFlags.Name():
		err := medianFlags.Parse(os.Args[2:])
		if err != nil || medianFlags.NArg() != 1 {
			exitWithUsage()
		}
		initLogger(verbose)
		runMedian(medianFlags.Arg(0), sorted)
	case summaryFlags.Name():
		err := summaryFlags.Parse(os.Args[2:])
		if err != nil || summaryFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runSummary(configFile)
	case serveFlags.Name():
		err := serveFlags.Parse(os.Args[2:])
		if err != nil || serveFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runServer(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if samples <= 0 || length < 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(samples, length, cpuProfile)
	default:
		exitWithUsage()
	}
}
