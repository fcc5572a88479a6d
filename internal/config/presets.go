package config

import (
	"sort"

	"github.com/jinzhu/copier"
)

var Presets = map[string]*Config{
	"collide": DefaultConfig(),
	"drift": func() *Config {
		c := DefaultConfig()
		c.SetSpeed(0)
		c.StopWhenIdle = false
		c.Duration = 4
		return c
	}(),
	"graze": func() *Config {
		c := DefaultConfig()
		c.BodyA.Position[1] = 2.5
		c.BodyB.Position[1] = -2.5
		return c
	}(),
	"rush": func() *Config {
		c := DefaultConfig()
		c.SetSpeed(1.2)
		c.Duration = 6
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	src, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := &Config{}
	if err := copier.CopyWithOption(cfg, src, copier.Option{DeepCopy: true}); err != nil {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
