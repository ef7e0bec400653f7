package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/lightfix/internal/fsops"
	"github.com/danieljhkim/lightfix/internal/override"
)

// ErrParse indicates a persisted configuration document exists but could not be parsed.
var ErrParse = errors.New("failed to parse light configuration")

// Document is the persisted configuration and, once resolved, the effective
// configuration of a run.
type Document struct {
	DisableInteriorSun bool `yaml:"disable_interior_sun"`
	DisableFlickering  bool `yaml:"disable_flickering"`
	DisablePulse       bool `yaml:"disable_pulse"`
	SaveLog            bool `yaml:"save_log"`
	AutoEnable         bool `yaml:"auto_enable"`
	NoNotifications    bool `yaml:"no_notifications"`
	Debug              bool `yaml:"debug"`

	StandardHue        float64 `yaml:"standard_hue"`
	StandardSaturation float64 `yaml:"standard_saturation"`
	StandardValue      float64 `yaml:"standard_value"`
	StandardRadius     float64 `yaml:"standard_radius"`

	ColoredHue        float64 `yaml:"colored_hue"`
	ColoredSaturation float64 `yaml:"colored_saturation"`
	ColoredValue      float64 `yaml:"colored_value"`
	ColoredRadius     float64 `yaml:"colored_radius"`

	DurationMult float64 `yaml:"duration_mult"`

	ExcludedPlugins []string `yaml:"excluded_plugins"`
	ExcludedIDs     []string `yaml:"excluded_ids"`

	LightOverrides   override.Table[override.LightOverride]   `yaml:"light_overrides"`
	AmbientOverrides override.Table[override.AmbientOverride] `yaml:"ambient_overrides"`

	OutputDir  string `yaml:"output_dir,omitempty"`
	SaveConfig bool   `yaml:"save_config"`

	// UnknownKeys lists top-level keys of the source file that this version
	// does not recognize. They are ignored and not written back.
	UnknownKeys []string `yaml:"-"`
}

var knownKeys = documentKeys()

func documentKeys() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Document{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

// Clone returns a deep copy. Lists and override tables are not shared.
func (d Document) Clone() Document {
	out := d
	out.ExcludedPlugins = append([]string(nil), d.ExcludedPlugins...)
	out.ExcludedIDs = append([]string(nil), d.ExcludedIDs...)
	out.LightOverrides = d.LightOverrides.Clone()
	out.AmbientOverrides = d.AmbientOverrides.Clone()
	return out
}

// LoadDocument reads the persisted document at path. A missing file returns
// (nil, false, nil). Keys absent from the file keep their defaults; unknown
// keys are ignored and reported in UnknownKeys.
func LoadDocument(fs fsops.FS, path string) (*Document, bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return doc, true, nil
}

// ParseDocument decodes a document on top of the defaults.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			doc := Defaults()
			return &doc, nil
		}
		return nil, err
	}

	doc := Defaults()
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	doc.UnknownKeys = unknownKeys(&root)
	return &doc, nil
}

func unknownKeys(root *yaml.Node) []string {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	var unknown []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		if key := m.Content[i].Value; !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// Marshal encodes the document as YAML with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode light configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveDocument writes the document atomically, creating the parent directory.
func SaveDocument(fs fsops.FS, path string, d *Document) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
