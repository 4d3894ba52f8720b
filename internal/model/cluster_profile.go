package model

// ClusterProfile carries the human-facing description of a cluster.
// Labels are configuration data: the same numeric cluster can mean different
// segments depending on the upstream model run.
type ClusterProfile struct {
	Label           string   `yaml:"label" mapstructure:"label"`
	Icon            string   `yaml:"icon" mapstructure:"icon"`
	Color           string   `yaml:"color" mapstructure:"color"`
	Characteristics []string `yaml:"characteristics" mapstructure:"characteristics"`
	Actions         []string `yaml:"actions" mapstructure:"actions"`
}

// Title returns the heading used for the cluster in reports.
func (p ClusterProfile) Title(id ClusterID) string {
	title := "Cluster " + id.String()
	if p.Label != "" {
		title += " – " + p.Label
	}
	if p.Icon != "" {
		title = p.Icon + " " + title
	}
	return title
}

// ClusterProfiles maps cluster ids to their profile.
type ClusterProfiles map[ClusterID]ClusterProfile

// Lookup returns the profile for id, or an empty profile when none is configured.
func (p ClusterProfiles) Lookup(id ClusterID) ClusterProfile {
	if p == nil {
		return ClusterProfile{}
	}
	return p[id]
}
