package waveform

// MemoryChannel is an in-memory Channel used by tests and by sources that
// materialize their data up front.
type MemoryChannel struct {
	ChannelName string
	Props       map[string]string
	Data        []float64
	Time        []float64
	ReadErr     error
}

func (c *MemoryChannel) Name() string { return c.ChannelName }

func (c *MemoryChannel) Property(key string) string { return c.Props[key] }

func (c *MemoryChannel) Samples() ([]float64, error) {
	if c.ReadErr != nil {
		return nil, c.ReadErr
	}
	return c.Data, nil
}

func (c *MemoryChannel) TimeTrack() ([]float64, error) {
	if c.ReadErr != nil {
		return nil, c.ReadErr
	}
	return c.Time, nil
}

// MemoryGroup is an in-memory Group.
type MemoryGroup struct {
	GroupName string
	Chans     []Channel
}

func (g *MemoryGroup) Name() string        { return g.GroupName }
func (g *MemoryGroup) Channels() []Channel { return g.Chans }

// MemorySource is an in-memory Source.
type MemorySource struct {
	GroupList []Group
	OpenErr   error
}

func (s *MemorySource) Groups() ([]Group, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	return s.GroupList, nil
}
