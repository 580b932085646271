package yamlcatalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

//go:embed scenarios.yaml
var embeddedScenarios []byte

type rawFile struct {
	Scenarios []rawScenario `yaml:"scenarios"`
}

type rawScenario struct {
	ID           string             `yaml:"id"`
	Family       string             `yaml:"family"`
	Title        string             `yaml:"title"`
	Description  string             `yaml:"description"`
	MaxTurns     *int               `yaml:"max_turns"`
	InitialState map[string]float64 `yaml:"initial_state"`
	Terminal     *rawTerminal       `yaml:"terminal"`
}

type rawTerminal struct {
	Bounds map[string]rawBound `yaml:"bounds"`
	Rules  []rawRule           `yaml:"rules"`
}

type rawBound struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type rawRule struct {
	Field     string  `yaml:"field"`
	Direction string  `yaml:"direction"`
	Value     float64 `yaml:"value"`
	Reason    string  `yaml:"reason"`
}

// Catalog serves scenario definitions built from the embedded file merged with
// optional overrides.
type Catalog struct {
	defs  map[string]scenario.Definition
	order []string
}

// Load parses the embedded scenarios and merges every *.yaml under overrideDir
// over them by id. An empty overrideDir skips overrides.
func Load(overrideDir string, reg scenario.Registry) (*Catalog, error) {
	base, err := parse(embeddedScenarios)
	if err != nil {
		return nil, fmt.Errorf("parse embedded scenarios: %w", err)
	}
	merged := base
	if strings.TrimSpace(overrideDir) != "" {
		files, err := filepath.Glob(filepath.Join(overrideDir, "*.yaml"))
		if err != nil {
			return nil, fmt.Errorf("list overrides: %w", err)
		}
		sort.Strings(files)
		for _, path := range files {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read override %s: %w", path, err)
			}
			over, err := parse(b)
			if err != nil {
				return nil, fmt.Errorf("parse override %s: %w", path, err)
			}
			merged = mergeFiles(merged, over)
		}
	}
	if err := Validate(merged, reg); err != nil {
		return nil, err
	}
	return build(merged), nil
}

func parse(b []byte) (rawFile, error) {
	var f rawFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return rawFile{}, err
	}
	return f, nil
}

// mergeFiles overlays b onto a. Scenarios match by id; unknown ids are appended.
func mergeFiles(a, b rawFile) rawFile {
	out := rawFile{Scenarios: make([]rawScenario, len(a.Scenarios))}
	copy(out.Scenarios, a.Scenarios)
	index := make(map[string]int, len(out.Scenarios))
	for i, s := range out.Scenarios {
		index[s.ID] = i
	}
	for _, s := range b.Scenarios {
		if i, ok := index[s.ID]; ok {
			out.Scenarios[i] = mergeScenario(out.Scenarios[i], s)
			continue
		}
		index[s.ID] = len(out.Scenarios)
		out.Scenarios = append(out.Scenarios, s)
	}
	return out
}

func mergeScenario(a, b rawScenario) rawScenario {
	out := a
	if b.Family != "" {
		out.Family = b.Family
	}
	if b.Title != "" {
		out.Title = b.Title
	}
	if b.Description != "" {
		out.Description = b.Description
	}
	if b.MaxTurns != nil {
		out.MaxTurns = b.MaxTurns
	}
	if len(b.InitialState) > 0 {
		state := make(map[string]float64, len(a.InitialState)+len(b.InitialState))
		for k, v := range a.InitialState {
			state[k] = v
		}
		for k, v := range b.InitialState {
			state[k] = v
		}
		out.InitialState = state
	}
	if b.Terminal != nil {
		t := *b.Terminal
		out.Terminal = &t
	}
	return out
}

// Validate reports every semantic problem in f at once.
func Validate(f rawFile, reg scenario.Registry) error {
	var errs []error
	seen := map[string]bool{}
	for i, s := range f.Scenarios {
		where := fmt.Sprintf("scenarios[%d]", i)
		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", where))
		} else {
			where = fmt.Sprintf("scenario %q", s.ID)
			if seen[s.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id", where))
			}
			seen[s.ID] = true
		}
		rs, ok := reg.Lookup(scenario.Family(s.Family))
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unknown family %q (known: %s)", where, s.Family, joinFamilies(reg.Families())))
		}
		if s.MaxTurns == nil || *s.MaxTurns <= 0 {
			errs = append(errs, fmt.Errorf("%s: max_turns must be positive", where))
		}
		if len(s.InitialState) == 0 {
			errs = append(errs, fmt.Errorf("%s: initial_state is empty", where))
		}
		if ok {
			for _, field := range rs.Fields() {
				if _, has := s.InitialState[field]; !has {
					errs = append(errs, fmt.Errorf("%s: initial_state is missing %s field %q", where, s.Family, field))
				}
			}
		}
		if s.Terminal != nil {
			for j, r := range s.Terminal.Rules {
				if strings.TrimSpace(r.Field) == "" {
					errs = append(errs, fmt.Errorf("%s: terminal.rules[%d]: field is required", where, j))
				} else if _, has := s.InitialState[r.Field]; !has {
					errs = append(errs, fmt.Errorf("%s: terminal.rules[%d]: field %q is not in initial_state", where, j, r.Field))
				}
				switch scenario.Direction(r.Direction) {
				case scenario.DirectionBelow, scenario.DirectionAbove:
				default:
					errs = append(errs, fmt.Errorf("%s: terminal.rules[%d]: bad direction %q", where, j, r.Direction))
				}
			}
			for field, b := range s.Terminal.Bounds {
				if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
					errs = append(errs, fmt.Errorf("%s: terminal.bounds[%s]: min above max", where, field))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func joinFamilies(fams []scenario.Family) string {
	names := make([]string, len(fams))
	for i, f := range fams {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func build(f rawFile) *Catalog {
	c := &Catalog{defs: make(map[string]scenario.Definition, len(f.Scenarios))}
	for _, s := range f.Scenarios {
		def := scenario.Definition{
			ID:           s.ID,
			Family:       scenario.Family(s.Family),
			Title:        s.Title,
			Description:  s.Description,
			MaxTurns:     *s.MaxTurns,
			InitialState: scenario.Fields(s.InitialState).Clone(),
		}
		if s.Terminal != nil {
			def.Terminal = toPolicy(*s.Terminal)
		}
		c.defs[s.ID] = def
		c.order = append(c.order, s.ID)
	}
	return c
}

func toPolicy(t rawTerminal) *scenario.TerminalPolicy {
	p := &scenario.TerminalPolicy{}
	if len(t.Bounds) > 0 {
		p.Bounds = make(map[string]scenario.Bound, len(t.Bounds))
		for field, b := range t.Bounds {
			p.Bounds[field] = scenario.Bound{Min: b.Min, Max: b.Max}
		}
	}
	for _, r := range t.Rules {
		p.Rules = append(p.Rules, scenario.TerminalRule{
			Field:     r.Field,
			Direction: scenario.Direction(r.Direction),
			Value:     r.Value,
			Reason:    r.Reason,
		})
	}
	return p
}

func (c *Catalog) List(_ context.Context) ([]scenario.Definition, error) {
	out := make([]scenario.Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out, nil
}

func (c *Catalog) Get(_ context.Context, id string) (scenario.Definition, error) {
	def, ok := c.defs[id]
	if !ok {
		return scenario.Definition{}, fmt.Errorf("scenario %q: %w", id, ports.ErrNotFound)
	}
	return def, nil
}
