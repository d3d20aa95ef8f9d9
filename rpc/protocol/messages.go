package protocol

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

// ChannelInfo is the payload of Overlay.ShowChannelInfo, carried as a Struct
// {"number": n, "subtitles": ["eng", ...]}
type ChannelInfo struct {
	Number    uint16
	Subtitles []string
}

// State is the reply of Overlay.GetState, carried as a Struct
type State struct {
	Active             string
	ChannelInfoShowing bool
	VolumeShowing      bool
	Armed              []string
	Texts              []string

	// Subtitles is the joined language list of the channel on screen, or else of the
	// tuned channel
	Subtitles string

	Channel     uint16
	ChannelName string
	Volume      float64
	Muted       bool
}

// Struct encodes the request
func (c ChannelInfo) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"number":    float64(c.Number),
		"subtitles": toList(c.Subtitles),
	})
}

// ChannelInfoFromStruct decodes a request built by ChannelInfo.Struct
func ChannelInfoFromStruct(s *structpb.Struct) (ChannelInfo, error) {
	fields := s.GetFields()
	n, err := channelNumber(fields["number"])
	if err != nil {
		return ChannelInfo{}, err
	}
	subs, err := fromList(fields["subtitles"])
	if err != nil {
		return ChannelInfo{}, errors.Wrap(err, "subtitles")
	}
	return ChannelInfo{Number: n, Subtitles: subs}, nil
}

// Struct encodes the reply
func (s State) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"active":             s.Active,
		"channelInfoShowing": s.ChannelInfoShowing,
		"volumeShowing":      s.VolumeShowing,
		"armed":              toList(s.Armed),
		"texts":              toList(s.Texts),
		"subtitles":          s.Subtitles,
		"channel":            float64(s.Channel),
		"channelName":        s.ChannelName,
		"volume":             s.Volume,
		"muted":              s.Muted,
	})
}

// StateFromStruct decodes a reply built by State.Struct
func StateFromStruct(st *structpb.Struct) (State, error) {
	fields := st.GetFields()
	n, err := channelNumber(fields["channel"])
	if err != nil {
		return State{}, err
	}
	armed, err := fromList(fields["armed"])
	if err != nil {
		return State{}, errors.Wrap(err, "armed")
	}
	texts, err := fromList(fields["texts"])
	if err != nil {
		return State{}, errors.Wrap(err, "texts")
	}
	return State{
		Active:             fields["active"].GetStringValue(),
		ChannelInfoShowing: fields["channelInfoShowing"].GetBoolValue(),
		VolumeShowing:      fields["volumeShowing"].GetBoolValue(),
		Armed:              armed,
		Texts:              texts,
		Subtitles:          fields["subtitles"].GetStringValue(),
		Channel:            n,
		ChannelName:        fields["channelName"].GetStringValue(),
		Volume:             fields["volume"].GetNumberValue(),
		Muted:              fields["muted"].GetBoolValue(),
	}, nil
}

// ValidChannel reports whether n can be carried as a channel number
func ValidChannel(n uint32) bool {
	return n <= math.MaxUint16
}

func channelNumber(v *structpb.Value) (uint16, error) {
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
		return 0, errors.New("channel number is missing")
	}
	f := v.GetNumberValue()
	if f < 0 || f > math.MaxUint16 || f != math.Trunc(f) {
		return 0, errors.Errorf("invalid channel number %v", f)
	}
	return uint16(f), nil
}

func toList(items []string) []interface{} {
	l := make([]interface{}, 0, len(items))
	for _, s := range items {
		l = append(l, s)
	}
	return l
}

func fromList(v *structpb.Value) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	values := v.GetListValue().GetValues()
	items := make([]string, 0, len(values))
	for _, item := range values {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.New("expecting a list of strings")
		}
		items = append(items, s.StringValue)
	}
	return items, nil
}
