package formulas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const DefaultConfigFile = `formulas.yml`

type Config struct {
	// The identifier of the host's data context; never resolved as a function.
	Reserved string `yaml:"reserved,omitempty"`

	// How several bare arguments to an aggregate are flattened: "deep" (default) or "shallow".
	Flatten string `yaml:"flatten,omitempty"`

	// Bindings for the global namespace.
	Globals map[string]interface{} `yaml:"globals,omitempty"`
}

func LoadConfig(data []byte) (Config, error) {
	var config Config

	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return Config{}, err
	}

	if _, err := config.Flattener(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func LoadConfigFile(filename string) (Config, error) {
	if data, err := os.ReadFile(filename); err == nil {
		if config, err := LoadConfig(data); err == nil {
			return config, nil
		} else {
			return Config{}, fmt.Errorf("config %s: %v", filename, err)
		}
	} else {
		return Config{}, err
	}
}

func (self Config) Flattener() (ArgFlattener, error) {
	switch self.Flatten {
	case ``, `deep`:
		return DeepFlatten, nil
	case `shallow`:
		return ShallowFlatten, nil
	default:
		return nil, fmt.Errorf("invalid flatten mode %q", self.Flatten)
	}
}

// Build a Resolver over the standard functions as configured.
func (self Config) Resolver() (*Resolver, error) {
	if flatten, err := self.Flattener(); err == nil {
		return NewResolver(ResolverConfig{
			Catalog:  NewCatalog(GetFunctions(flatten)),
			Math:     MathNamespace,
			Globals:  NewGlobalNamespace(self.Globals),
			Reserved: self.Reserved,
		}), nil
	} else {
		return nil, err
	}
}
