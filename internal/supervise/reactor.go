package supervise

// reaction is what the supervisor does in response to a classified line.
type reaction int

const (
	reactNone reaction = iota
	// reactScheduleStop arms the delayed first-boot "stop" write.
	reactScheduleStop
	// reactKeystroke injects one newline to unblock a stalled prompt.
	reactKeystroke
)

// reactor is the supervisor's line-level state. The ready signal arms the
// stop write at most once per run; stall lines inject one keystroke per
// occurrence, not per state.
type reactor struct {
	firstBoot     bool
	stopScheduled bool
}

func (r *reactor) react(c LineClass) reaction {
	switch c {
	case Ready:
		if !r.firstBoot || r.stopScheduled {
			return reactNone
		}
		r.stopScheduled = true
		return reactScheduleStop
	case ChunkIOStall, ThreadPoolStall:
		return reactKeystroke
	}
	return reactNone
}
