package records

import "strings"

// Master is a dependency entry in the overlay header.
type Master struct {
	Name string `yaml:"name" json:"name"`
	Size int64  `yaml:"size" json:"size"`
}

// MasterList is an ordered, name-unique dependency list.
// Order is load order: the first entry loads first.
type MasterList []Master

// Contains reports whether a master with the given name is present.
// Names compare case-insensitively, like file names in the game's VFS.
func (m MasterList) Contains(name string) bool {
	for _, master := range m {
		if strings.EqualFold(master.Name, name) {
			return true
		}
	}
	return false
}

// InsertFront adds a master at the front of the list.
// Returns false and leaves the list untouched if the name is already present.
func (m *MasterList) InsertFront(name string, size int64) bool {
	if m.Contains(name) {
		return false
	}
	*m = append(MasterList{{Name: name, Size: size}}, (*m)...)
	return true
}

// Names returns the master names in order.
func (m MasterList) Names() []string {
	names := make([]string, 0, len(m))
	for _, master := range m {
		names = append(names, master.Name)
	}
	return names
}

// Header is the overlay package header.
type Header struct {
	Version     float32    `yaml:"version" json:"version"`
	Author      string     `yaml:"author" json:"author"`
	Description string     `yaml:"description" json:"description"`
	Masters     MasterList `yaml:"masters" json:"masters"`
	RecordCount int        `yaml:"record_count" json:"record_count"`
}

// NewHeader returns the header used for generated overlays.
func NewHeader() Header {
	return Header{
		Version:     1.3,
		Author:      "S3",
		Description: "Plugin generated by s3-lightfixes",
		Masters:     MasterList{},
	}
}

// Overlay is the generated package.
type Overlay struct {
	Header Header        `yaml:"header" json:"header"`
	Cells  []CellRecord  `yaml:"cells" json:"cells"`
	Lights []LightRecord `yaml:"lights" json:"lights"`
}
