package history

import "cathode/internal/display"

// NopHistory discards activations. It is used when history is disabled.
type NopHistory struct{}

func (NopHistory) RecordActivation(*display.Activation) error { return nil }

func (NopHistory) RecentActivations(int) ([]*display.Activation, error) { return nil, nil }

func (NopHistory) Close() error { return nil }

var _ display.History = NopHistory{}
