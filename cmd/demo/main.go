// Command demo is a small, runnable walkthrough of the core package plus
// every collaborator described in the spec: it shards writes across a
// small router, replicates them to a file sink, runs a correlation scan
// between two series, and logs the point count, compressed size and
// compression stats before exiting. Telemetry counters are registered with
// a Prometheus registry but are not printed.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nyxcore/tsz"
	"github.com/nyxcore/tsz/correlation"
	"github.com/nyxcore/tsz/format"
	"github.com/nyxcore/tsz/replicate"
	"github.com/nyxcore/tsz/shard"
	"github.com/nyxcore/tsz/telemetry"
)

var (
	app = kingpin.New("tsz-demo", "Demonstration driver for the tsz time-series engine.")

	blockSeconds = app.Flag("block-seconds", "Block window duration, in seconds.").
			Default("7200").Uint64()
	shardCount = app.Flag("shards", "Number of shards to route writes across.").
			Default("4").Int()
	replicaPath = app.Flag("replica-path", "Path to a best-effort replica log file.").
			Default("").String()
	compression = app.Flag("compression", "Block compression: none, zstd, s2, lz4, snappy.").
			Default("none").Enum("none", "zstd", "s2", "lz4", "snappy")
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "demo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	codec, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := telemetry.NewPrometheus(reg)
	if err != nil {
		return fmt.Errorf("register telemetry: %w", err)
	}

	opts := []tsz.Option{
		tsz.WithCompression(codec),
		tsz.WithTelemetry(collector),
	}

	if *replicaPath != "" {
		sink, err := replicate.OpenFileSink(*replicaPath)
		if err != nil {
			return fmt.Errorf("open replica: %w", err)
		}
		defer sink.Close()

		opts = append(opts, tsz.WithReplica(sink))
		level.Info(logger).Log("msg", "replicating to file", "path", *replicaPath)
	}

	router, err := shard.NewRouter(*shardCount, *blockSeconds, opts...)
	if err != nil {
		return fmt.Errorf("new router: %w", err)
	}

	level.Info(logger).Log("msg", "router created", "shards", *shardCount, "block_seconds", *blockSeconds)

	const base = uint64(1_700_000_000)
	cpu := []byte("server1.cpu.usage")
	load := []byte("server1.load.avg")

	for i := 0; i < 60; i++ {
		ts := base + uint64(i)*60 //nolint:gosec
		cpuVal := 40 + 10*math.Sin(float64(i)/6)
		loadVal := 1 + 0.2*math.Sin(float64(i)/6)

		if err := router.Insert(cpu, ts, cpuVal); err != nil {
			return fmt.Errorf("insert cpu sample %d: %w", i, err)
		}
		if err := router.Insert(load, ts, loadVal); err != nil {
			return fmt.Errorf("insert load sample %d: %w", i, err)
		}
	}

	level.Info(logger).Log("msg", "ingested", "points", router.CountPoints())

	shardIdx := router.ShardFor(cpu)
	r, n, err := correlation.Pearson(router.Registry(shardIdx), cpu, load, base, base+3600*2)
	if err != nil {
		level.Warn(logger).Log("msg", "correlation unavailable", "err", err)
	} else {
		level.Info(logger).Log("msg", "pearson correlation", "r", r, "n", n)
	}

	bytesUsed := router.Registry(shardIdx).CompressedBytes(cpu)
	level.Info(logger).Log("msg", "compressed size", "series", string(cpu), "bytes", bytesUsed)

	if stats, ok := router.Registry(shardIdx).CompressionStats(cpu); ok {
		level.Info(logger).Log("msg", "compression stats", "series", string(cpu),
			"algorithm", stats.Algorithm, "ratio", stats.Ratio, "savings_pct", stats.SpaceSavings())
	}

	return nil
}

func parseCompression(s string) (format.CompressionType, error) {
	switch s {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	case "snappy":
		return format.CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}
