// Package zonemap maps grid layers (K indices) to named zones. The
// mapping lives in a YAML file next to the DATA file and feeds the
// ZONE column of completion exports.
package zonemap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Zone map errors.
var (
	ErrNoZones          = errors.New("zone file contains no zones")
	ErrZoneMissingName  = errors.New("zone is missing a name")
	ErrInvalidZoneRange = errors.New("zone range is invalid")
	ErrOverlappingZones = errors.New("zones have overlapping layer ranges")
)

// DefaultFileName is looked up next to the DATA file when no zone
// file is given explicitly.
const DefaultFileName = "zones.yml"

// zoneFile is the on-disk YAML layout.
type zoneFile struct {
	Zones []zoneEntry `yaml:"zones"`
}

type zoneEntry struct {
	Name string `yaml:"name"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
}

// ZoneMap maps a K layer index to a zone name.
type ZoneMap map[int]string

// Load reads a zone file and expands it to a layer lookup.
func Load(path string) (ZoneMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}

	var parsed zoneFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse zone file: %w", err)
	}

	if len(parsed.Zones) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoZones, path)
	}

	zones := make(ZoneMap)

	for _, zone := range parsed.Zones {
		if zone.Name == "" {
			return nil, ErrZoneMissingName
		}

		if zone.From < 1 || zone.To < zone.From {
			return nil, fmt.Errorf("%w: %s %d-%d", ErrInvalidZoneRange, zone.Name, zone.From, zone.To)
		}

		for k := zone.From; k <= zone.To; k++ {
			if existing, taken := zones[k]; taken {
				return nil, fmt.Errorf("%w: layer %d in both %s and %s",
					ErrOverlappingZones, k, existing, zone.Name)
			}

			zones[k] = zone.Name
		}
	}

	return zones, nil
}

// LoadDefault looks for the default zone file next to a DATA file.
// A missing file is not an error and yields a nil map.
func LoadDefault(datafile string) (ZoneMap, error) {
	path := filepath.Join(filepath.Dir(datafile), DefaultFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	return Load(path)
}
