package dispatcher

// Stage is a step in the life of one invocation
type Stage int

const (
	StageReceived Stage = iota
	StageCanonicalized
	StageRouted
	StageHandled
	StageSerialized
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageReceived:      "received",
	StageCanonicalized: "canonicalized",
	StageRouted:        "routed",
	StageHandled:       "handled",
	StageSerialized:    "serialized",
	StageDone:          "done",
	StageFailed:        "failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// next lists the legal transitions out of each stage
var next = map[Stage][]Stage{
	StageReceived:      {StageCanonicalized},
	StageCanonicalized: {StageRouted, StageFailed},
	StageRouted:        {StageHandled, StageSerialized, StageDone},
	StageHandled:       {StageSerialized, StageDone, StageFailed},
	StageFailed:        {StageSerialized, StageDone},
	StageSerialized:    {StageDone},
}

// CanTransition reports whether an invocation may move from one stage to another
func CanTransition(from, to Stage) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
