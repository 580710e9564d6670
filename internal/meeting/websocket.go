package meeting

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

// implWSClient acquires meeting audio over a websocket instead of the
// HTTP chunk stream. Join, leave, and transcript polling stay on the
// REST surface.
type implWSClient struct {
	rest   API
	wsBase string
	apiKey string
	dialer *websocket.Dialer
	logger logger.Logger
}

// NewWSClient wraps a REST client with websocket audio acquisition.
// wsBase is the ws:// or wss:// counterpart of the REST base URL.
func NewWSClient(rest API, wsBase, apiKey string, log logger.Logger) API {
	return &implWSClient{
		rest:   rest,
		wsBase: wsBase,
		apiKey: apiKey,
		dialer: websocket.DefaultDialer,
		logger: log.Named("meeting-ws"),
	}
}

func (c *implWSClient) Join(ctx context.Context, meetingID, meetingURL string) (Meeting, error) {
	return c.rest.Join(ctx, meetingID, meetingURL)
}

func (c *implWSClient) Leave(ctx context.Context, m Meeting) error {
	return c.rest.Leave(ctx, m)
}

func (c *implWSClient) Transcript(ctx context.Context, m Meeting) ([]TranscriptSegment, error) {
	return c.rest.Transcript(ctx, m)
}

// OpenStream dials the meeting websocket, announces the session, and
// waits for confirmation before handing back the audio reader.
func (c *implWSClient) OpenStream(ctx context.Context, m Meeting) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/meetings/%s/stream", c.wsBase, m.MeetingID)
	header := http.Header{"Authorization": []string{"Bearer " + c.apiKey}}

	conn, resp, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial meeting websocket: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	join := map[string]string{
		"action":     "join",
		"meeting_id": m.MeetingID,
		"session_id": m.SessionID,
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send join message: %w", err)
	}

	var confirmation struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := conn.ReadJSON(&confirmation); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read join confirmation: %w", err)
	}
	if confirmation.Status != "success" {
		conn.Close()
		return nil, fmt.Errorf("join meeting stream: %s", confirmation.Error)
	}

	c.logger.Info(ctx, "Websocket stream open for meeting %s", m.MeetingID)
	return &wsAudioReader{conn: conn}, nil
}

// wsAudioReader adapts websocket frames into an io.ReadCloser. Binary
// frames are raw audio; text frames carry base64 audio or control
// messages, which are skipped. A closed connection reads as EOF.
type wsAudioReader struct {
	conn   *websocket.Conn
	buf    []byte
	closed bool
}

func (r *wsAudioReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.closed {
			return 0, io.EOF
		}

		msgType, data, err := r.conn.ReadMessage()
		if err != nil {
			r.closed = true
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}

		switch msgType {
		case websocket.BinaryMessage:
			r.buf = data
		case websocket.TextMessage:
			var msg struct {
				Type string `json:"type"`
				Data string `json:"data"`
			}
			if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "audio" {
				continue
			}
			decoded, err := base64.StdEncoding.DecodeString(msg.Data)
			if err != nil {
				continue
			}
			r.buf = decoded
		}
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *wsAudioReader) Close() error {
	r.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}
