package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bietkhonhungvandi212/fitsim/internal/input"
	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Scenario is a batch run stored as YAML.
type Scenario struct {
	Pages       []int    `yaml:"pages"`
	Frames      []int    `yaml:"frames"`
	Strategies  []string `yaml:"strategies,omitempty"`
	Unavailable bool     `yaml:"unavailable,omitempty"`
	Seed        *uint64  `yaml:"seed,omitempty"`
}

// Implemented are the strategies a scenario runs when it names none.
var Implemented = []util.StrategyID{util.FirstFit, util.NextFit, util.BestFit, util.WorstFit}

func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[scenario] [Load] %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("[scenario] [Load] %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a single scenario document; unknown keys are rejected.
func Parse(b []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		if err == io.EOF {
			return nil, util.InvalidInput(util.MsgEmptyScenario)
		}
		return nil, util.InvalidInput(util.MsgMalformedScenario, err)
	}
	return s, nil
}

// ToRequest validates the scenario and turns it into a run request.
func (s *Scenario) ToRequest(strict bool) (sim.RunRequest, error) {
	ids := Implemented
	if len(s.Strategies) > 0 {
		var err error
		if ids, err = input.ParseStrategies(s.Strategies); err != nil {
			return sim.RunRequest{}, err
		}
	}
	if err := input.CheckSizes(input.FieldPages, s.Pages); err != nil {
		return sim.RunRequest{}, err
	}
	if err := input.Validate(s.Pages, s.Frames, strict); err != nil {
		return sim.RunRequest{}, err
	}
	return sim.RunRequest{
		Pages:       append([]int{}, s.Pages...),
		Frames:      append([]int{}, s.Frames...),
		Strategies:  append([]util.StrategyID{}, ids...),
		Unavailable: s.Unavailable,
		Seed:        s.Seed,
	}, nil
}

func (s *Scenario) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
