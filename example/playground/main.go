package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/strafe"
	"github.com/oomph-ac/strafe/session"
	"github.com/oomph-ac/strafe/settings"
)

// The following program runs a scripted set of bodies through the playground, optionally tracing
// and recording them, or replays a recording and checks it still matches.
func main() {
	settingsPath := flag.String("settings", "", "path to a settings file overlaying the defaults")
	scriptPath := flag.String("script", "example/playground/script.yaml", "path to the input script")
	replayPath := flag.String("replay", "", "path to a recording to verify instead of running the script")
	flag.Parse()

	if err := run(*settingsPath, *scriptPath, *replayPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(settingsPath, scriptPath, replayPath string) error {
	s := settings.Default()
	if settingsPath != "" {
		loaded, err := settings.Load(settingsPath)
		if err != nil {
			return err
		}
		s = loaded
	}
	log, err := s.Logging.Logger(os.Stderr)
	if err != nil {
		return err
	}

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Sentry.DSN, Environment: s.Sentry.Environment}); err != nil {
			return fmt.Errorf("initialising sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		defer sentry.Recover()
	}

	if s.Statsview.Addr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Statsview.Addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Info("statsview listening", "addr", s.Statsview.Addr)
	}

	script, err := strafe.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	if replayPath != "" {
		return replay(s, log, script, replayPath)
	}

	var opts strafe.Options
	if s.Trace.CSV != "" {
		f, err := os.Create(s.Trace.CSV)
		if err != nil {
			return fmt.Errorf("creating trace: %w", err)
		}
		defer f.Close()
		opts.Trace = f
	}
	if s.Recording.Path != "" {
		f, err := os.Create(s.Recording.Path)
		if err != nil {
			return fmt.Errorf("creating recording: %w", err)
		}
		defer f.Close()
		opts.Recording = f
	}

	r, err := strafe.New(s, log, opts)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.SpawnScript(script); err != nil {
		return err
	}
	log.Info("running script", "bodies", len(script.Bodies), "ticks", script.Ticks(), "profile", s.Simulation.Profile)
	if err := r.Run(script); err != nil {
		return err
	}
	r.LogSummary()
	return nil
}

func replay(s *settings.Settings, log *slog.Logger, script strafe.Script, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()
	frames, err := session.Read(f)
	if err != nil {
		return err
	}
	if err := strafe.Replay(s, log, script, frames); err != nil {
		if strafe.IsChecksumMismatch(err) {
			log.Error("replay diverged", "err", err)
		}
		return err
	}
	log.Info("replay matches recording", "frames", len(frames))
	return nil
}
