package domain

// Mode - режим взаимодействия: ровно одно значение в любой момент
type Mode int

const (
	ModeIdle Mode = iota
	ModeBuffering
	ModeRouting
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBuffering:
		return "buffering"
	case ModeRouting:
		return "routing"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
