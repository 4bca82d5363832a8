package clustering

import "fmt"

// ArchetypeMap maps cluster indices to human-readable archetype names.
// The mapping is presentation vocabulary applied after clustering; the
// engine itself only ever returns integer labels.
type ArchetypeMap map[int]string

// DefaultArchetypes returns the five behavioral archetypes used by the
// dashboard.
func DefaultArchetypes() ArchetypeMap {
	return ArchetypeMap{
		0: "Cluster A: High-Volume Regional",
		1: "Cluster B: High-Lethality Extremists",
		2: "Cluster C: Transnational Networks",
		3: "Cluster D: Tactical Insurgents",
		4: "Cluster E: Emerging Threats",
	}
}

// Label returns the archetype name for a cluster index, falling back to
// a generic label for unmapped indices.
func (m ArchetypeMap) Label(cluster int) string {
	if name, ok := m[cluster]; ok {
		return name
	}
	return fmt.Sprintf("Cluster %d", cluster)
}
