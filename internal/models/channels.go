package models

import "fmt"

// ChannelSet records which of a frame's channels are selected for
// processing. Unselected channels pass through from the base frame.
type ChannelSet struct {
	process [MaxChannels]bool
}

// NewChannelSet validates the given channel indices against the number of
// channels actually present. An empty selection defaults to channel 0.
func NewChannelSet(channels []int, numChannels int) (ChannelSet, error) {
	var set ChannelSet

	if len(channels) == 0 {
		set.process[0] = true
		return set, nil
	}

	for _, ch := range channels {
		if ch < 0 || ch >= numChannels {
			return ChannelSet{}, fmt.Errorf("channel index out of range: %d (frame has %d channels)", ch, numChannels)
		}
		if set.process[ch] {
			return ChannelSet{}, fmt.Errorf("channel %d specified twice", ch)
		}
		set.process[ch] = true
	}

	return set, nil
}

func (s ChannelSet) Contains(channel int) bool {
	if channel < 0 || channel >= MaxChannels {
		return false
	}
	return s.process[channel]
}

func (s ChannelSet) Count() int {
	count := 0
	for _, p := range s.process {
		if p {
			count++
		}
	}
	return count
}
