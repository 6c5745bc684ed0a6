package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/bmatsuo/nisp/repl"
	yaml "gopkg.in/yaml.v2"
)

// Settings are the options which may be given in a YAML settings file.
type Settings struct {
	Prompt         string `yaml:"prompt"`
	HistoryFile    string `yaml:"history_file"`
	MaxStackHeight int    `yaml:"max_stack_height"`
	Print          bool   `yaml:"print"`
	Trace          bool   `yaml:"trace"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Prompt: repl.DefaultPrompt,
	}
}

// LoadSettings reads a YAML settings file.  Keys missing from the file keep
// their default values.
func LoadSettings(path string) (*Settings, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSettings(b)
}

// ParseSettings parses YAML settings.
func ParseSettings(b []byte) (*Settings, error) {
	settings := DefaultSettings()
	err := yaml.UnmarshalStrict(b, settings)
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %v", err)
	}
	if settings.MaxStackHeight < 0 {
		return nil, fmt.Errorf("invalid settings: negative max_stack_height: %d", settings.MaxStackHeight)
	}
	return settings, nil
}
