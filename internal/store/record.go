package store

import "cathode/internal/display"

// modeRecord is the on-disk shape of a TimingMode.
type modeRecord struct {
	Name       string `yaml:"name"`
	PixelClock string `yaml:"pixel_clock"`
	HDisplay   string `yaml:"h_display"`
	HSyncStart string `yaml:"h_sync_start"`
	HSyncEnd   string `yaml:"h_sync_end"`
	HTotal     string `yaml:"h_total"`
	VDisplay   string `yaml:"v_display"`
	VSyncStart string `yaml:"v_sync_start"`
	VSyncEnd   string `yaml:"v_sync_end"`
	VTotal     string `yaml:"v_total"`
	Flags      string `yaml:"flags"`
}

func toRecord(m display.TimingMode) modeRecord {
	return modeRecord{
		Name:       m.Name,
		PixelClock: m.PixelClock,
		HDisplay:   m.HDisplay,
		HSyncStart: m.HSyncStart,
		HSyncEnd:   m.HSyncEnd,
		HTotal:     m.HTotal,
		VDisplay:   m.VDisplay,
		VSyncStart: m.VSyncStart,
		VSyncEnd:   m.VSyncEnd,
		VTotal:     m.VTotal,
		Flags:      m.Flags,
	}
}

func (r modeRecord) mode() display.TimingMode {
	return display.TimingMode{
		Name:       r.Name,
		PixelClock: r.PixelClock,
		HDisplay:   r.HDisplay,
		HSyncStart: r.HSyncStart,
		HSyncEnd:   r.HSyncEnd,
		HTotal:     r.HTotal,
		VDisplay:   r.VDisplay,
		VSyncStart: r.VSyncStart,
		VSyncEnd:   r.VSyncEnd,
		VTotal:     r.VTotal,
		Flags:      r.Flags,
	}
}

// Collection is the set of modes read from a store.
// Recovered is set when the stored content could not be parsed and the
// collection was treated as empty.
type Collection struct {
	Modes     []display.TimingMode
	Recovered error
}

// Find returns the first mode called name.
func (c *Collection) Find(name string) (display.TimingMode, bool) {
	for _, m := range c.Modes {
		if m.Name == name {
			return m, true
		}
	}
	return display.TimingMode{}, false
}

// Put removes every mode called mode.Name and appends mode.
func (c *Collection) Put(mode display.TimingMode) (replaced bool) {
	kept := c.Modes[:0]
	for _, m := range c.Modes {
		if m.Name == mode.Name {
			replaced = true
			continue
		}
		kept = append(kept, m)
	}
	c.Modes = append(kept, mode)
	return replaced
}
