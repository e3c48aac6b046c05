// Command sandbox runs the combo training sandbox.
package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/younwookim/brawl/internal/application/game"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene/training"
	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/infrastructure/metrics"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay")
	verifyFlag := flag.String("verify", "", "Replay a recording headless and check its digest")
	metricsAddr := flag.String("metrics", "", "Serve prometheus metrics on this address (e.g., :9090)")
	verbose := flag.Bool("verbose", false, "Log attacks, hits and KOs")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var combat *metrics.Combat
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		combat = metrics.NewCombat(reg)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			log.Printf("Serving metrics on %s/metrics", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	settings, m, err := buildMatch(loader, combat)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *verifyFlag != "" {
		if err := verifyReplay(m, *verifyFlag); err != nil {
			log.Printf("Verify failed: %v", err)
			os.Exit(1)
		}
		return
	}

	opts := training.Options{
		Match:          m,
		ScreenW:        settings.Display.ScreenWidth,
		ScreenH:        settings.Display.ScreenHeight,
		PixelsPerUnit:  settings.Display.PixelsPerUnit,
		StageHalfWidth: settings.Stage.HalfWidth,
		RecordPath:     *recordFlag,
		Verbose:        *verbose,
	}

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replay = data
		opts.RecordPath = ""
	} else {
		keys := system.DefaultKeyMap()
		if len(settings.Controls) > 0 {
			keys, err = system.ParseKeyMap(settings.Controls)
			if err != nil {
				log.Fatalf("Failed to parse controls: %v", err)
			}
		}
		opts.Input = system.NewInputSystem(keys)
	}

	g := game.New(training.New(opts), settings.Display.ScreenWidth, settings.Display.ScreenHeight)

	// Set up ebiten
	ebiten.SetWindowSize(settings.Display.ScreenWidth*settings.Display.Scale,
		settings.Display.ScreenHeight*settings.Display.Scale)
	ebiten.SetWindowTitle("Brawl Sandbox")
	ebiten.SetTPS(settings.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
