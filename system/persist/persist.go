package persist

import "gopkg.in/yaml.v3"

// Registry provides an interface for different configurations to save to the state file and reload
type Registry interface {
	// Name should return the name of the configuration, used as its key in the state file
	Name() string
	// Value should return the values to be persisted. It must be marshalable by yaml.v3.
	Value() interface{}
	// Load should decode the node previously written from Value() and populate the configuration
	Load(*yaml.Node) error
	// Apply should re-apply configurations
	Apply() error
	// Close should handle graceful shutdown (e.g. closing sockets, etc)
	Close() error
}

// ConfigRegistry defines an interface to save/load/apply configs in each Registry
type ConfigRegistry interface {
	// Register should register the given Registry to be load/save/apply
	Register(registry Registry)
	// Load should restore the configurations from the backing storage
	Load() error
	// Save should save the configurations to the backing storage
	Save() error
	// Apply should instruct each Registry to apply the configurations
	Apply() error
	// Close should instruct each Registry to close/clean up
	Close()
}
