package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/stamina/stamina"
	"gopkg.in/yaml.v3"
)

var ErrMissingName = errors.New("prefabs: actor spec has no name")

// ActorSpec describes one actor archetype: its display name, stamina
// tuning and an optional behaviour script.
type ActorSpec struct {
	Name    string         `yaml:"name"`
	Stamina stamina.Config `yaml:"stamina"`
	Script  string         `yaml:"script"`

	// Archetype is derived from the file name, not read from yaml.
	Archetype string `yaml:"-"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadActorSpec reads and validates an actor spec. Stamina fields missing
// from the file keep their stamina.DefaultConfig values.
func LoadActorSpec(name string) (*ActorSpec, error) {
	filename := cleanPrefabPath(name)
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := ActorSpec{Stamina: stamina.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	spec.Archetype = ArchetypeOf(filename)
	if spec.Name == "" {
		spec.Name = spec.Archetype
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ActorSpec) Validate() error {
	if s == nil || s.Name == "" {
		return ErrMissingName
	}
	if err := s.Stamina.Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return nil
}
