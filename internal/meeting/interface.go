package meeting

import (
	"context"
	"io"
)

// Meeting identifies a joined meeting session on the streaming platform.
type Meeting struct {
	MeetingID string `json:"meeting_id"`
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
}

// TranscriptSegment is one live-transcription chunk from the platform.
type TranscriptSegment struct {
	Speaker   string  `json:"speaker"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// API is the meeting-platform surface: join a session, stream its
// audio, poll its transcript, leave.
type API interface {
	Join(ctx context.Context, meetingID, meetingURL string) (Meeting, error)
	Leave(ctx context.Context, m Meeting) error
	Transcript(ctx context.Context, m Meeting) ([]TranscriptSegment, error)
	OpenStream(ctx context.Context, m Meeting) (io.ReadCloser, error)
}
