package model

// Window describes the currently focused window as reported by a
// detection backend. Fields a backend cannot determine are left zero.
type Window struct {
	AppID       string   `yaml:"app"               json:"app"`
	Title       string   `yaml:"title,omitempty"   json:"title,omitempty"`
	PID         int      `yaml:"pid,omitempty"     json:"pid,omitempty"`
	ProcessName string   `yaml:"process,omitempty" json:"process,omitempty"`
	Geometry    Geometry `yaml:"geometry"          json:"geometry"`
}

// SameApp reports whether both windows belong to the same application.
func (w Window) SameApp(other Window) bool {
	return w.AppID == other.AppID
}
