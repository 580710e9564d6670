package voice

// ElevenLabs voice name to voice ID.
var voiceIDs = map[string]string{
	"Rachel":  "21m00Tcm4TlvDq8ikWAM",
	"Domi":    "AZnzlk1XvdvUeBnXmlld",
	"Bella":   "EXAVITQu4vr4xnSDxMaL",
	"Antoni":  "ErXwobaYiN019PkySvjV",
	"Thomas":  "GBv7mTt0atIp3Br8iCZE",
	"Charlie": "IKne3meq5aSn9XLyUdCD",
}

const defaultVoice = "Rachel"

// VoiceID resolves a voice name to its ElevenLabs ID, defaulting to Rachel.
func VoiceID(name string) string {
	if id, ok := voiceIDs[name]; ok {
		return id
	}
	return voiceIDs[defaultVoice]
}
