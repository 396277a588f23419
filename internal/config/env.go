package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/notesplit/internal/cluster"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from environment variables. Unset or empty
// variables leave the current value alone.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MIN_CONTOUR_AREA", &c.Preprocess.MinContourArea},
		{"CLUSTERING_PROXIMITY", &c.Cluster.Proximity},
		{"TEXT_OVERLAP_REJECTION", &c.Cluster.TextOverlapRejection},
		{"SESSION_TTL_HOURS", &c.API.SessionTTLHours},
	}
	for _, f := range floats {
		if v, ok := get(f.key); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", f.key, err)
			}
			*f.dst = n
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PADDING", &c.Cluster.Padding},
		{"MAX_DIAGRAMS", &c.Cluster.MaxDiagrams},
		{"CONNECTOR_BRIDGE_THRESHOLD", &c.Cluster.ConnectorBridgeThreshold},
		{"API_PORT", &c.API.Port},
		{"MAX_FILE_SIZE_MB", &c.API.MaxFileSizeMB},
		{"MAX_CONCURRENT_SESSIONS", &c.API.MaxSessions},
		{"PROCESSING_TIMEOUT_SECONDS", &c.API.TimeoutSeconds},
	}
	for _, f := range ints {
		if v, ok := get(f.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", f.key, err)
			}
			*f.dst = n
		}
	}

	if v, ok := get("DIAGRAM_SORTING_METHOD"); ok {
		m, err := cluster.ParseSortMethod(v)
		if err != nil {
			return fmt.Errorf("invalid DIAGRAM_SORTING_METHOD: %w", err)
		}
		c.Cluster.SortMethod = m
	}
	if v, ok := get("API_HOST"); ok {
		c.API.Host = v
	}
	if v, ok := get("TEMP_DIR"); ok {
		c.API.TempDir = v
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.API.CORSOrigins = origins
	}
	return nil
}
