package loader

// yamlScene is the hand-authored scene description format.
//
//	name: Shot
//	fps: 24
//	frame_current: 1
//	objects:
//	  - name: Cube
//	    parent: Root
//	    translation: [0, 0, 0]
//	    rotation: [0, 0, 0]   # Euler degrees, X then Y then Z
//	    scale: [1, 1, 1]
//	    channels:
//	      - path: translation
//	        interpolation: LINEAR
//	        keys:
//	          - {frame: 0, value: [0, 0, 0]}
type yamlScene struct {
	Name         string       `yaml:"name"`
	FPS          float64      `yaml:"fps,omitempty"`
	FrameCurrent int          `yaml:"frame_current,omitempty"`
	Objects      []yamlObject `yaml:"objects"`
}

type yamlObject struct {
	Name        string        `yaml:"name"`
	Parent      string        `yaml:"parent,omitempty"`
	Translation *[3]float64   `yaml:"translation,omitempty,flow"`
	Rotation    *[3]float64   `yaml:"rotation,omitempty,flow"`
	Scale       *[3]float64   `yaml:"scale,omitempty,flow"`
	Channels    []yamlChannel `yaml:"channels,omitempty"`
}

type yamlChannel struct {
	Path          string    `yaml:"path"`
	Interpolation string    `yaml:"interpolation,omitempty"`
	Keys          []yamlKey `yaml:"keys"`
}

type yamlKey struct {
	Frame int        `yaml:"frame"`
	Value [3]float64 `yaml:"value,flow"`
}
