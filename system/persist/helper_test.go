package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type mockState struct {
	Channel uint16  `yaml:"channel"`
	Volume  float64 `yaml:"volume"`
}

type mockConfig struct {
	state   mockState
	applied int
	closed  bool
}

func (m *mockConfig) Name() string               { return "MockConfig" }
func (m *mockConfig) Value() interface{}         { return m.state }
func (m *mockConfig) Load(node *yaml.Node) error { return node.Decode(&m.state) }
func (m *mockConfig) Apply() error               { m.applied++; return nil }
func (m *mockConfig) Close() error               { m.closed = true; return nil }

var _ Registry = &mockConfig{}

func TestPersistToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	expected := mockState{Channel: 12, Volume: 0.35}

	h, err := NewFileHelper(path)
	require.NoError(t, err)

	m := mockConfig{state: expected}
	h.Register(&m)
	require.NoError(t, h.Save())

	hL, err := NewFileHelper(path)
	require.NoError(t, err)

	m = mockConfig{}
	hL.Register(&m)
	require.NoError(t, hL.Load())
	require.Equal(t, expected, m.state)

	require.NoError(t, hL.Apply())
	require.Equal(t, 1, m.applied)
	hL.Close()
	require.True(t, m.closed)
}

func TestLoadMissingFile(t *testing.T) {
	h, err := NewFileHelper(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	m := mockConfig{state: mockState{Channel: 3}}
	h.Register(&m)
	require.NoError(t, h.Load())
	require.EqualValues(t, 3, m.state.Channel)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("MockConfig: [1, 2"), 0o644))

	h, err := NewFileHelper(path)
	require.NoError(t, err)
	h.Register(&mockConfig{})
	require.Error(t, h.Load())

	require.NoError(t, os.WriteFile(path, []byte("MockConfig:\n  channel: many\n"), 0o644))
	require.Error(t, h.Load())
}

func TestDryHelperDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	h, err := NewDryRegistryHelper(path)
	require.NoError(t, err)
	h.Register(&mockConfig{state: mockState{Channel: 1}})
	require.NoError(t, h.Save())

	_, err = os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	_, err = NewFileHelper("")
	require.Error(t, err)
}
