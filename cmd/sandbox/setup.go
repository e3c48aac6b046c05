package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"

	"github.com/younwookim/brawl/internal/application/match"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/infrastructure/config"
	"github.com/younwookim/brawl/internal/infrastructure/metrics"
)

//go:embed configs
var configFS embed.FS

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// buildMatch loads settings and movesets and creates the match they describe
func buildMatch(loader *config.Loader, m *metrics.Combat) (*config.Settings, *match.Match, error) {
	settings, err := loader.LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	sets, err := loader.LoadMovesets(settings)
	if err != nil {
		return nil, nil, err
	}
	roster, err := settings.Roster(sets)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build roster: %w", err)
	}

	mt, err := match.New(match.Config{
		Physics:  settings.PhysicsConfig(),
		Fighters: roster,
		Debug:    settings.Match.Debug,
		Metrics:  m,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create match: %w", err)
	}
	return settings, mt, nil
}

// verifyReplay replays a recording headless and checks its digest
func verifyReplay(m *match.Match, path string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}
	digest, err := replay.Verify(m, *data)
	if err != nil {
		return err
	}
	log.Printf("Replay %s verified: %d frames, digest %s", data.Session, len(data.Frames), replay.FormatDigest(digest))
	return nil
}
