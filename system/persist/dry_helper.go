package persist

import "log"

type dryRegistryHelper struct {
	ConfigRegistry
}

var _ ConfigRegistry = &dryRegistryHelper{}

// NewDryRegistryHelper returns a helper that loads the state file but never writes it
func NewDryRegistryHelper(path string) (ConfigRegistry, error) {
	helper, err := NewFileHelper(path)
	if err != nil {
		return nil, err
	}
	log.Println("[dry run] persist: initializing state file without save IOs")
	return &dryRegistryHelper{
		ConfigRegistry: helper,
	}, nil
}

// Save will do nothing
func (d *dryRegistryHelper) Save() error {
	return nil
}
