package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Clusters map[model.ClusterID]model.ClusterProfile `yaml:"clusters"`
}

// LoadProfiles reads cluster profiles from a standalone YAML document:
//
//	clusters:
//	  1:
//	    label: Best Customers
//	    characteristics: [Highest spend]
//	    actions: [VIP treatment]
func LoadProfiles(path string) (model.ClusterProfiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: profiles file %s not found", common.ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: profiles file %s: %v", common.ErrInvalidConfig, path, err)
	}

	profiles := make(model.ClusterProfiles, len(pf.Clusters))
	for id, p := range pf.Clusters {
		profiles[id] = p
	}
	return profiles, nil
}
