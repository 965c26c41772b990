package assets

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/levels"
)

var ErrAssetMissing = errors.New("assets: asset missing")

// Entry pairs a logical key with a path inside the asset tree.
type Entry struct {
	Key  string
	Path string
}

// AtlasEntry is a sheet image plus its frame metadata document.
type AtlasEntry struct {
	Key       string
	ImagePath string
	DataPath  string
}

// Manifest lists everything a scene needs before it can be built.
type Manifest struct {
	Images  []Entry
	Tilemap Entry
	Atlas   AtlasEntry
}

// DefaultManifest is the asset set of the first level.
func DefaultManifest(level string) Manifest {
	if level == "" {
		level = "level1.json"
	}
	return Manifest{
		Images: []Entry{
			{Key: "background", Path: "images/backgroundEmpty.png"},
			{Key: "spike", Path: "images/spike.png"},
			{Key: "tiles", Path: "tilesets/platformPack_tilesheet.png"},
		},
		Tilemap: Entry{Key: "map", Path: "tilemaps/" + level},
		Atlas: AtlasEntry{
			Key:       "player",
			ImagePath: "images/kenney_player.png",
			DataPath:  "images/kenney_player_atlas.json",
		},
	}
}

// Bundle holds decoded assets keyed by their manifest keys.
type Bundle struct {
	Images  map[string]*ebiten.Image
	Map     *levels.Map
	MapKey  string
	Atlases map[string]*render.Atlas
}

// Image returns a loaded image or ErrAssetMissing.
func (b *Bundle) Image(key string) (*ebiten.Image, error) {
	if b != nil {
		if img, ok := b.Images[key]; ok && img != nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("%w: image %q", ErrAssetMissing, key)
}

// Atlas returns a loaded atlas or ErrAssetMissing.
func (b *Bundle) Atlas(key string) (*render.Atlas, error) {
	if b != nil {
		if a, ok := b.Atlases[key]; ok && a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: atlas %q", ErrAssetMissing, key)
}

// Loader fetches a manifest from a file tree.
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = assetsFS
	}
	return &Loader{fsys: fsys}
}

type rawBundle struct {
	images     map[string][]byte
	tilemap    []byte
	atlasImage []byte
	atlasData  []byte
}

// Load reads every manifest entry before decoding any of them, so a missing
// file fails the whole load without partial results.
func (l *Loader) Load(m Manifest) (*Bundle, error) {
	raw, err := l.read(m)
	if err != nil {
		return nil, err
	}
	b, err := parseDocuments(m, raw)
	if err != nil {
		return nil, err
	}

	for key, data := range raw.images {
		img, err := decodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("assets: image %q: %w", key, err)
		}
		b.Images[key] = img
	}
	sheet, err := decodeImage(raw.atlasImage)
	if err != nil {
		return nil, fmt.Errorf("assets: atlas %q: %w", m.Atlas.Key, err)
	}
	b.Atlases[m.Atlas.Key].Image = sheet
	return b, nil
}

func (l *Loader) read(m Manifest) (*rawBundle, error) {
	raw := &rawBundle{images: make(map[string][]byte, len(m.Images))}
	for _, e := range m.Images {
		data, err := l.readFile(e.Key, e.Path)
		if err != nil {
			return nil, err
		}
		raw.images[e.Key] = data
	}

	var err error
	if raw.tilemap, err = l.readFile(m.Tilemap.Key, m.Tilemap.Path); err != nil {
		return nil, err
	}
	if raw.atlasImage, err = l.readFile(m.Atlas.Key, m.Atlas.ImagePath); err != nil {
		return nil, err
	}
	if raw.atlasData, err = l.readFile(m.Atlas.Key, m.Atlas.DataPath); err != nil {
		return nil, err
	}
	return raw, nil
}

func (l *Loader) readFile(key, path string) ([]byte, error) {
	if key == "" || path == "" {
		return nil, fmt.Errorf("%w: empty manifest entry (key %q, path %q)", ErrAssetMissing, key, path)
	}
	data, err := fs.ReadFile(l.fsys, cleanAssetPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrAssetMissing, key, path)
		}
		return nil, fmt.Errorf("assets: read %s (%s): %w", key, path, err)
	}
	return data, nil
}

func parseDocuments(m Manifest, raw *rawBundle) (*Bundle, error) {
	lvl, err := levels.Parse(raw.tilemap)
	if err != nil {
		return nil, fmt.Errorf("assets: tilemap %q: %w", m.Tilemap.Key, err)
	}
	atlas, err := render.NewAtlas(nil, raw.atlasData)
	if err != nil {
		return nil, fmt.Errorf("assets: atlas %q: %w", m.Atlas.Key, err)
	}
	return &Bundle{
		Images:  make(map[string]*ebiten.Image, len(raw.images)),
		Map:     lvl,
		MapKey:  m.Tilemap.Key,
		Atlases: map[string]*render.Atlas{m.Atlas.Key: atlas},
	}, nil
}
