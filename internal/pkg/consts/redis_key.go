package consts

const (
	GameReputationKey      = "reputation:game:"
	UserReputationKey      = "reputation:user:"
	SignalSkillKey         = "signal:skill:"
	SignalReliabilityKey   = "signal:reliability:"
	SignalParticipationKey = "signal:participation:"
)

const (
	SweepLock = "reputation:sweep:lock"
)
