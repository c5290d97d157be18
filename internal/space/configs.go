package space

import (
	"os"
	"regexp"
	"sort"
)

var configNamePattern = regexp.MustCompile(`^parking_spaces\d+\.json$`)

// ListConfigs returns the parking space configuration files in dir,
// sorted by name. Only files matching parking_spaces<N>.json count.
func ListConfigs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if configNamePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// IsConfigName reports whether name is a valid configuration file name.
// Used to reject path traversal in the config selection API.
func IsConfigName(name string) bool {
	return configNamePattern.MatchString(name)
}
