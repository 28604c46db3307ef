package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CrashPulse/internal/batch"
	"CrashPulse/internal/config"
	"CrashPulse/internal/dsp"
	"CrashPulse/internal/metrics"
	"CrashPulse/internal/pipeline"
	"CrashPulse/internal/report"
	"CrashPulse/internal/scheduler"
	"CrashPulse/internal/store"
	"CrashPulse/internal/waveform"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		filePath = flag.String("file", "", "analyze a single exported CSV trace and exit")
		massKG   = flag.Float64("mass", 0, "vehicle test mass in kg for the single-file mode")
		chartOut = flag.String("chart", "", "write a pulse chart HTML next to the single-file result")
		once     = flag.Bool("once", false, "run one batch sweep and exit")
	)
	flag.Parse()

	if *filePath != "" {
		p := withMetrics(pipeline.New())
		if err := analyzeFile(p, *filePath, *massKG, *chartOut); err != nil {
			log.Fatalf("[FATAL] analyze %s: %v", *filePath, err)
		}
		return
	}

	log.Println("[INFO] crash pulse analyzer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
		st = store.NewNoopStore()
	} else {
		st = ss
		defer ss.Close()
	}

	p := withMetrics(pipeline.NewWithCFC(cfg.Analysis.CFC))
	runner := batch.NewRunner(st, waveform.OpenCSV, p)
	runner.ChartDir = cfg.Data.ChartDir

	if *once {
		if err := runner.SweepOnce(context.Background()); err != nil {
			log.Fatalf("[FATAL] batch sweep: %v", err)
		}
		return
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, runner)
	if err := sched.Register(cfg.Schedule.SweepCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing sweep now")
		go sched.RunNow()
	}

	log.Println("[INFO] analyzer is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}

func withMetrics(p *pipeline.Pipeline) *pipeline.Pipeline {
	p.AddMetric(metrics.BasicKinematics{})
	p.AddMetric(metrics.MaxDisplacement{})
	p.AddMetric(metrics.OLCCalculator{})
	p.AddMetric(metrics.EnergyAnalysis{})
	return p
}

// analyzeFile runs the full pipeline on one exported trace and prints the
// metric summary.
func analyzeFile(p *pipeline.Pipeline, path string, massKG float64, chartOut string) error {
	src, err := waveform.OpenCSV(path)
	if err != nil {
		return err
	}

	cand, err := waveform.Locate(src)
	if err != nil {
		if errors.Is(err, waveform.ErrNoChannel) {
			return fmt.Errorf("no accelerometer channel in %s", path)
		}
		return err
	}
	log.Printf("[INFO] selected sensor: %s (%s)", cand.Channel.Name(), cand.Location)

	rawG, err := cand.Channel.Samples()
	if err != nil {
		return err
	}
	timeS, err := cand.Channel.TimeTrack()
	if err != nil {
		return err
	}

	cleanTime, cleanG := dsp.Preprocess(timeS, rawG)
	res, err := p.Run(cleanTime, cleanG, massKG)
	if err != nil {
		return err
	}

	fmt.Print(report.Summary(path, res))

	if chartOut != "" {
		f, err := os.Create(chartOut)
		if err != nil {
			return fmt.Errorf("create chart: %w", err)
		}
		defer f.Close()
		if err := report.PulseChart(res.Signal, path, f); err != nil {
			return err
		}
		log.Printf("[INFO] chart written to %s", chartOut)
	}
	return nil
}
