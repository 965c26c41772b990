package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

type layerSummary struct {
	Name    string
	Type    string
	Tiles   int
	Objects int
	OffsetX float64
	OffsetY float64
}

type levelSummary struct {
	Path        string
	Columns     int
	Rows        int
	TileSize    int
	Width       float64
	Height      float64
	Layers      []layerSummary
	SolidTiles  int
	SolidBlocks []entity.TileRect
	Hazards     []entity.HazardPlacement
}

func levelFileName(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}

func summarizeLevelFile(path string, settings *config.Settings) (*levelSummary, error) {
	lvl, err := levels.Load(path)
	if err != nil {
		return nil, err
	}
	spike, err := prefabs.LoadSpikeSpec()
	if err != nil {
		return nil, err
	}
	summary, err := summarizeLevel(lvl, settings.Level.PlatformLayer, spike)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	summary.Path = path
	return summary, nil
}

func summarizeLevel(lvl *levels.Map, platformLayer string, spike *prefabs.SpikeSpec) (*levelSummary, error) {
	w, h := entity.LevelExtent(lvl)
	s := &levelSummary{
		Columns:  lvl.Width,
		Rows:     lvl.Height,
		TileSize: lvl.TileWidth,
		Width:    w,
		Height:   h,
	}

	for _, l := range lvl.Layers {
		ls := layerSummary{Name: l.Name, Type: l.Type, Objects: len(l.Objects), OffsetX: l.OffsetX, OffsetY: l.OffsetY}
		for _, gid := range l.Data {
			if gid != 0 {
				ls.Tiles++
			}
		}
		s.Layers = append(s.Layers, ls)
	}

	platforms, err := lvl.Layer(platformLayer)
	if err != nil {
		return nil, err
	}
	mask := platforms.SolidMask(levels.EmptyTile)
	for _, solid := range mask {
		if solid {
			s.SolidTiles++
		}
	}
	s.SolidBlocks = entity.MergeSolidTiles(mask, platforms.Width, platforms.Height)

	hazards, err := entity.SpikePlacements(lvl, spike)
	if err != nil {
		return nil, err
	}
	s.Hazards = hazards
	return s, nil
}

func (s *levelSummary) Print(w io.Writer) {
	if s.Path != "" {
		fmt.Fprintf(w, "level %s\n", s.Path)
	}
	fmt.Fprintf(w, "  size     %dx%d tiles of %d, %gx%g world units\n", s.Columns, s.Rows, s.TileSize, s.Width, s.Height)
	fmt.Fprintf(w, "  layers   %d\n", len(s.Layers))
	for _, l := range s.Layers {
		fmt.Fprintf(w, "    %-12s %-12s tiles=%d objects=%d offset=(%g,%g)\n", l.Name, l.Type, l.Tiles, l.Objects, l.OffsetX, l.OffsetY)
	}
	fmt.Fprintf(w, "  solid    %d tiles in %d blocks\n", s.SolidTiles, len(s.SolidBlocks))
	fmt.Fprintf(w, "  hazards  %d\n", len(s.Hazards))
	for _, hz := range s.Hazards {
		fmt.Fprintf(w, "    (%g,%g) %gx%g\n", hz.X, hz.Y, hz.Width, hz.Height)
	}
}
