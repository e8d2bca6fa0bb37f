package parameter

// Sound event identifiers
const (
	SoundBulletWhistle  = "event:/HonlyHelper/bullet_whistle"
	SoundBulletImpact   = "event:/game/04_cliffside/snowball_impact"
	SoundCompanionSplit = "event:/char/badeline/maddy_split"
	SoundCompanionJoin  = "event:/new_content/char/badeline/maddy_join_quick"
	SoundDashBlockBreak = "event:/game/general/wall_break_stone"
)

// Audio mixing
const (
	// AudioSampleRate is the output sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferMs is the speaker buffer length
	AudioBufferMs = 100

	// AudioPanRange is the level width in pixels mapped to full stereo pan
	AudioPanRange = 320.0
)
