package fluidtype

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"gopkg.in/yaml.v3"
)

// Step is one computed entry of the scale
type Step struct {
	Index  int    // 0..MinStep+MaxStep
	Power  int    // Index - MinStep; 0 is the base step
	Suffix string // "-1", "0", "sm"
	Name   string // Prefix + Suffix

	// Sizes in the output unit
	MinSize   float64
	MaxSize   float64
	SlopeVW   float64 // Slope as a percentage of viewport width
	Intercept float64

	Value   string // clamp(...) expression
	MinName string // Set when min/max variables are enabled
	MaxName string
}

// Entry is a single generated name and its CSS value
type Entry struct {
	Name  string
	Value string
}

// Scale is the ordered mapping produced by Generate. Entries keep the order
// they were generated in: ascending step index, with min and max entries
// ahead of their step when variables are enabled.
type Scale struct {
	config  Config
	entries *linkedhashmap.Map
	steps   []Step
}

// Generate computes the fluid type scale for config
func Generate(config Config) (*Scale, error) {
	suffixes, err := config.validate()
	if err != nil {
		return nil, err
	}

	minScreen, maxScreen := config.MinScreenWidth, config.MaxScreenWidth
	minFont, maxFont := config.MinFontSize, config.MaxFontSize
	if config.Unit != UnitPx {
		minScreen /= config.RootFontSize
		maxScreen /= config.RootFontSize
		minFont /= config.RootFontSize
		maxFont /= config.RootFontSize
	}

	unit := string(config.Unit)
	scale := &Scale{
		config:  config,
		entries: linkedhashmap.New(),
		steps:   make([]Step, 0, config.TotalSteps()),
	}

	baseIndex := config.MinStep
	for index := 0; index <= config.MinStep+config.MaxStep; index++ {
		power := index - baseIndex

		fsMin := minFont * math.Pow(config.MinRatio, float64(power))
		fsMax := maxFont * math.Pow(config.MaxRatio, float64(power))

		slope := (fsMax - fsMin) / (maxScreen - minScreen)
		intercept := fsMin - slope*minScreen
		slopeVW := slope * 100

		suffix := strconv.Itoa(power)
		if config.SuffixType == SuffixValues {
			suffix = suffixes[index]
		}

		step := Step{
			Index:     index,
			Power:     power,
			Suffix:    suffix,
			Name:      config.Prefix + suffix,
			MinSize:   fsMin,
			MaxSize:   fsMax,
			SlopeVW:   slopeVW,
			Intercept: intercept,
		}

		lower := toFixed(fsMin, config.Precision) + unit
		upper := toFixed(fsMax, config.Precision) + unit
		preferred := fmt.Sprintf("%svw + %s%s",
			toFixed(slopeVW, config.Precision), toFixed(intercept, config.Precision), unit)

		if config.InsertMinMaxFontAsVariables {
			step.MinName = config.Prefix + "min-" + suffix
			step.MaxName = config.Prefix + "max-" + suffix
			scale.entries.Put(step.MinName, lower)
			scale.entries.Put(step.MaxName, upper)
			lower = "var(--" + step.MinName + ")"
			upper = "var(--" + step.MaxName + ")"
		}

		step.Value = fmt.Sprintf("clamp(%s, %s, %s)", lower, preferred, upper)
		scale.entries.Put(step.Name, step.Value)
		scale.steps = append(scale.steps, step)
	}

	return scale, nil
}

// Config returns the configuration the scale was generated from
func (s *Scale) Config() Config {
	return s.config
}

// Len returns the number of entries, including min/max variables
func (s *Scale) Len() int {
	return s.entries.Size()
}

// Get looks up the CSS value for a generated name (without leading "--")
func (s *Scale) Get(name string) (string, bool) {
	v, ok := s.entries.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Each calls fn for every entry in order
func (s *Scale) Each(fn func(name, value string)) {
	it := s.entries.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().(string))
	}
}

// Names returns all entry names in order
func (s *Scale) Names() []string {
	names := make([]string, 0, s.entries.Size())
	s.Each(func(name, _ string) {
		names = append(names, name)
	})
	return names
}

// Entries returns all entries in order
func (s *Scale) Entries() []Entry {
	entries := make([]Entry, 0, s.entries.Size())
	s.Each(func(name, value string) {
		entries = append(entries, Entry{Name: name, Value: value})
	})
	return entries
}

// Steps returns the computed steps in ascending order
func (s *Scale) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// IsVariable reports whether name is a min/max helper entry rather than a step
func (s *Scale) IsVariable(name string) bool {
	for _, step := range s.steps {
		if step.MinName == name || step.MaxName == name {
			return true
		}
	}
	return false
}

// Variables returns the min/max helper entries in order, empty unless
// InsertMinMaxFontAsVariables is set
func (s *Scale) Variables() []Entry {
	var vars []Entry
	for _, step := range s.steps {
		if step.MinName == "" {
			continue
		}
		minValue, _ := s.Get(step.MinName)
		maxValue, _ := s.Get(step.MaxName)
		vars = append(vars, Entry{Name: step.MinName, Value: minValue}, Entry{Name: step.MaxName, Value: maxValue})
	}
	return vars
}

// MarshalJSON encodes the scale as an object in generation order
func (s *Scale) MarshalJSON() ([]byte, error) {
	return marshalEntries(s.Entries())
}

// marshalEntries encodes entries as a JSON object keeping their order
func marshalEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the scale as a mapping in generation order
func (s *Scale) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	s.Each(func(name, value string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
		)
	})
	return node, nil
}
