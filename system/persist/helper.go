package persist

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileHelper contains a list of configurations to be loaded, saved, and applied.
// All of them share one YAML document, keyed by Registry.Name().
type FileHelper struct {
	mu      sync.Mutex
	configs map[string]Registry
	path    string
}

var _ ConfigRegistry = &FileHelper{}

// NewFileHelper returns a helper to persist config to the YAML file at path
func NewFileHelper(path string) (*FileHelper, error) {
	if path == "" {
		return nil, errors.New("persist: empty state file path")
	}
	return &FileHelper{
		configs: make(map[string]Registry),
		path:    path,
	}, nil
}

// Register will add the config to the list
func (h *FileHelper) Register(config Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.configs[config.Name()] = config
}

// Load will retrive and populate configs from the state file
func (h *FileHelper) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		// nothing to load
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "persist: cannot read state file")
	}

	doc := make(map[string]yaml.Node)
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return errors.Wrapf(err, "persist: malformed state file %s", h.path)
	}

	for _, name := range h.names() {
		node, ok := doc[name]
		if !ok {
			continue
		}
		log.Printf("persist: loading \"%s\" from %s\n", name, h.path)
		if err := h.configs[name].Load(&node); err != nil {
			log.Printf("persist: error loading \"%s\": %s\n", name, err)
			return errors.Wrapf(err, "persist: cannot load %s", name)
		}
	}

	return nil
}

// Save will persist all the configs to the state file. The file is replaced atomically.
func (h *FileHelper) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc := make(map[string]interface{}, len(h.configs))
	for name, config := range h.configs {
		log.Printf("persist: saving \"%s\" to %s\n", name, h.path)
		doc[name] = config.Value()
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "persist: cannot encode state")
	}

	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "persist: cannot create state directory")
	}
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return errors.Wrap(err, "persist: cannot create temporary state file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrap(err, "persist: cannot write state")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "persist: cannot write state")
	}
	return errors.Wrap(os.Rename(tmp.Name(), h.path), "persist: cannot replace state file")
}

// Apply will apply each config accordingly. This is usually called after Load()
func (h *FileHelper) Apply() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range h.names() {
		log.Printf("persist: applying \"%s\" config\n", name)
		if err := h.configs[name].Apply(); err != nil {
			log.Printf("persist: error applying \"%s\": %s\n", name, err)
			return err
		}
	}

	return nil
}

// Close will release resources of each config
func (h *FileHelper) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range h.names() {
		log.Printf("persist: closing \"%s\"\n", name)
		if err := h.configs[name].Close(); err != nil {
			log.Printf("persist: error closing \"%s\": %s\n", name, err)
		}
	}
}

func (h *FileHelper) names() []string {
	names := make([]string, 0, len(h.configs))
	for name := range h.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
