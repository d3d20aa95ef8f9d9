package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestChannelInfoStruct(t *testing.T) {
	s, err := ChannelInfo{Number: 42, Subtitles: []string{"eng", "fra"}}.Struct()
	require.NoError(t, err)

	c, err := ChannelInfoFromStruct(s)
	require.NoError(t, err)
	require.Equal(t, ChannelInfo{Number: 42, Subtitles: []string{"eng", "fra"}}, c)

	s, err = ChannelInfo{Number: 7}.Struct()
	require.NoError(t, err)
	c, err = ChannelInfoFromStruct(s)
	require.NoError(t, err)
	require.Empty(t, c.Subtitles)
}

func TestChannelInfoFromStructRejects(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"number": "seven"},
		{"number": 70000.0},
		{"number": -1.0},
		{"number": 1.5},
		{"number": 1.0, "subtitles": []interface{}{"eng", 3.0}},
	}
	for _, c := range cases {
		s, err := structpb.NewStruct(c)
		require.NoError(t, err)
		_, err = ChannelInfoFromStruct(s)
		require.Error(t, err, "%v", c)
	}
}

func TestStateStruct(t *testing.T) {
	expected := State{
		Active:        "VolumeLevel",
		VolumeShowing: true,
		Armed:         []string{"VolumeLevel"},
		Texts:         []string{"76%"},
		Subtitles:     "srp, eng",
		Channel:       12,
		ChannelName:   "Sports",
		Volume:        0.755,
	}
	s, err := expected.Struct()
	require.NoError(t, err)

	st, err := StateFromStruct(s)
	require.NoError(t, err)
	require.Equal(t, expected, st)
}

func TestValidChannel(t *testing.T) {
	require.True(t, ValidChannel(65535))
	require.False(t, ValidChannel(65536))
}
