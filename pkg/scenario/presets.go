package scenario

import (
	"bytes"
	_ "embed"

	"gopkg.in/yaml.v2"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
)

//go:embed presets.yaml
var presetsYAML []byte

type presetIntervention struct {
	Type   string             `yaml:"type"`
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

type presetBundle struct {
	Presets map[string][]presetIntervention `yaml:"presets"`
}

var presets = mustLoadPresets()

func mustLoadPresets() presetBundle {
	var b presetBundle
	if err := yaml.NewDecoder(bytes.NewReader(presetsYAML)).Decode(&b); err != nil {
		// The bundle is embedded at build time, so a decode failure here is
		// a broken presets.yaml, not a runtime/caller error.
		panic("scenario: malformed embedded presets.yaml: " + err.Error())
	}
	return b
}

// ResolvePreset looks up a named intervention bundle embedded in
// presets.yaml (e.g. "aggressive-decarb", "solar-only"), returning the
// []Intervention it describes and whether name matched a known preset.
// Callers that build their own intervention list never need this path.
func ResolvePreset(name string) ([]ghgtypes.Intervention, bool) {
	bundle, ok := presets.Presets[name]
	if !ok {
		return nil, false
	}
	out := make([]ghgtypes.Intervention, 0, len(bundle))
	for _, iv := range bundle {
		out = append(out, ghgtypes.Intervention{
			Type:   ghgtypes.InterventionType(iv.Type),
			Name:   iv.Name,
			Params: iv.Params,
		})
	}
	return out, true
}
