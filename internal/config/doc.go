// Package config assembles the notesplit configuration.
//
// Values come from, in increasing precedence: built-in defaults, an
// optional YAML file, and environment variables. Hosts call LoadDotEnv
// first so a .env file can provide those variables. The YAML file is
// expanded with os.ExpandEnv before decoding and unknown keys are errors.
//
// Example:
//
//	cluster:
//	  clustering_proximity: 120
//	  sorting_method: reading_order
//	classifier:
//	  connector:
//	    enabled: true
//	api:
//	  temp_dir: ${HOME}/.cache/notesplit
package config
