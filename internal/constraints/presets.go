package constraints

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/calplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// Preset is a reusable set of preferences stored as YAML:
//
//	working_hours:
//	  start: "08:30"
//	  end: "17:00"
//	density: light
//	constraints:
//	  - Pas de réunions le vendredi après-midi
type Preset struct {
	WorkingHours struct {
		Start string `yaml:"start,omitempty"`
		End   string `yaml:"end,omitempty"`
	} `yaml:"working_hours"`
	Density     string   `yaml:"density,omitempty"`
	Constraints []string `yaml:"constraints,omitempty"`
}

// LoadPreset reads a preset file.
func LoadPreset(path string) (*Preset, error) {
	if path == "" {
		return nil, errors.New("preset path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	return ParsePreset(data)
}

// ParsePreset decodes preset YAML.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}
	return &p, nil
}

// Apply merges the preset into c. Blank fields leave the collector's
// values in place; constraints are added with the usual de-duplication.
// Nothing is changed when a field fails validation.
func (p *Preset) Apply(c *Collector) error {
	start, end := c.start, c.end
	if p.WorkingHours.Start != "" {
		start = p.WorkingHours.Start
	}
	if p.WorkingHours.End != "" {
		end = p.WorkingHours.End
	}
	start, err := NormalizeClock("workingHoursStart", start)
	if err != nil {
		return err
	}
	end, err = NormalizeClock("workingHoursEnd", end)
	if err != nil {
		return err
	}
	density := c.density
	if p.Density != "" {
		density = domain.MeetingDensity(p.Density)
		if !domain.ValidDensities[density] {
			return &domain.ValidationError{Field: "meetingDensity", Message: fmt.Sprintf("unknown density %q", p.Density)}
		}
	}

	c.start, c.end, c.density = start, end, density
	for _, text := range p.Constraints {
		c.Add(text)
	}
	return nil
}

// PresetFrom captures a snapshot as a preset.
func PresetFrom(sc *domain.SchedulingConstraints) *Preset {
	p := &Preset{Density: string(sc.MeetingDensity)}
	p.WorkingHours.Start = sc.WorkingHoursStart
	p.WorkingHours.End = sc.WorkingHoursEnd
	p.Constraints = sc.Descriptions()
	return p
}

// Marshal encodes the preset as YAML.
func (p *Preset) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
