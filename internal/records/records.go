package records

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB8 is an 8-bit color. The unused fourth channel of the on-disk layout is
// always written as zero.
type RGB8 [3]uint8

// MarshalYAML writes the color as a four-element flow sequence.
func (c RGB8) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [4]uint8{c[0], c[1], c[2], 0} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(int(v)),
		})
	}
	return node, nil
}

// UnmarshalYAML reads three or four channel values. The fourth is ignored.
func (c *RGB8) UnmarshalYAML(node *yaml.Node) error {
	var channels []int
	if err := node.Decode(&channels); err != nil {
		return fmt.Errorf("line %d: color must be a list of integers", node.Line)
	}
	if len(channels) != 3 && len(channels) != 4 {
		return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", node.Line, len(channels))
	}
	for i := 0; i < 3; i++ {
		if channels[i] < 0 || channels[i] > 255 {
			return fmt.Errorf("line %d: color channel %d out of range: %d", node.Line, i, channels[i])
		}
		c[i] = uint8(channels[i])
	}
	return nil
}

// NormalizeID returns the case-insensitive identity used for deduplication
// and pattern matching.
func NormalizeID(id string) string {
	return strings.ToLower(id)
}

// LightRecord is a single light definition.
type LightRecord struct {
	ID       string     `yaml:"id" json:"id" validate:"required,noctrl"`
	Name     string     `yaml:"name,omitempty" json:"name,omitempty"`
	Mesh     string     `yaml:"mesh,omitempty" json:"mesh,omitempty"`
	Weight   float64    `yaml:"weight,omitempty" json:"weight,omitempty"`
	Value    uint32     `yaml:"value,omitempty" json:"value,omitempty"`
	Color    RGB8       `yaml:"color" json:"color"`
	Radius   uint32     `yaml:"radius" json:"radius"`
	Duration int32      `yaml:"duration" json:"duration"`
	Flags    LightFlags `yaml:"flags" json:"flags"`
}

// Atmosphere holds the interior lighting data of a cell.
type Atmosphere struct {
	Ambient    RGB8    `yaml:"ambient" json:"ambient"`
	Sunlight   RGB8    `yaml:"sunlight" json:"sunlight"`
	Fog        RGB8    `yaml:"fog" json:"fog"`
	FogDensity float64 `yaml:"fog_density" json:"fog_density"`
}

// Reference is an object instance placed in a cell.
type Reference struct {
	Index    uint32     `yaml:"index" json:"index"`
	ID       string     `yaml:"id" json:"id"`
	Position [3]float64 `yaml:"position,flow" json:"position"`
}

// CellRecord is a cell definition. Only interior cells with atmosphere data
// take part in the overlay.
type CellRecord struct {
	ID          string      `yaml:"id" json:"id" validate:"required_if=Interior true,noctrl"`
	Interior    bool        `yaml:"interior" json:"interior"`
	Region      string      `yaml:"region,omitempty" json:"region,omitempty"`
	Atmosphere  *Atmosphere `yaml:"atmosphere,omitempty" json:"atmosphere,omitempty"`
	WaterHeight *float64    `yaml:"water_height,omitempty" json:"water_height,omitempty"`
	References  []Reference `yaml:"references,omitempty" json:"references,omitempty"`
}

// HasInteriorAtmosphere reports whether the cell is eligible for the overlay.
func (c *CellRecord) HasInteriorAtmosphere() bool {
	return c.Interior && c.Atmosphere != nil
}

// StripPlacements drops instance data the overlay must never carry.
func (c *CellRecord) StripPlacements() {
	c.References = nil
	c.WaterHeight = nil
}

// Package is the Light and Cell content of one content package.
type Package struct {
	// Name is the file name as declared in the load order
	Name string

	// Path is the resolved location on disk
	Path string

	// Size is the file size in bytes
	Size int64

	Lights []LightRecord
	Cells  []CellRecord
}

// RecordCount returns the number of records in the package.
func (p *Package) RecordCount() int {
	return len(p.Lights) + len(p.Cells)
}
