package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultLiveURL   = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
	defaultLiveModel = "gemini-2.5-flash-native-audio-preview-09-2025"
	defaultLiveVoice = "Zephyr"

	inputMimeType = "audio/pcm;rate=16000"
	statusFailed  = "Error en la conexión. Intenta reconectar."
	writeWait     = 10 * time.Second
)

// Frame is what the browser and the bridge exchange.
type Frame struct {
	Type    string `json:"type"`
	Data    string `json:"data,omitempty"`
	Text    string `json:"text,omitempty"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

type Config struct {
	URL    string
	APIKey string
	Model  string
	Voice  string
}

func ConfigFromEnv() Config {
	return Config{
		URL:    envOr("GEMINI_LIVE_URL", defaultLiveURL),
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  envOr("GEMINI_LIVE_MODEL", defaultLiveModel),
		Voice:  envOr("GEMINI_LIVE_VOICE", defaultLiveVoice),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Bridge relays a browser audio socket to the upstream live model and runs
// tool calls locally.
type Bridge struct {
	cfg      Config
	dialer   *websocket.Dialer
	upgrader websocket.Upgrader
}

func NewBridge(cfg Config) *Bridge {
	return &Bridge{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: 15 * time.Second},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// lockedConn serialises writes; gorilla allows one concurrent writer.
type lockedConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *lockedConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(v)
}

// --------------------------------------------------
// Upstream protocol
// --------------------------------------------------

type upstreamMessage struct {
	SetupComplete *json.RawMessage `json:"setupComplete"`
	ServerContent *struct {
		ModelTurn *struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"modelTurn"`
		InputTranscription *struct {
			Text string `json:"text"`
		} `json:"inputTranscription"`
		OutputTranscription *struct {
			Text string `json:"text"`
		} `json:"outputTranscription"`
		TurnComplete bool `json:"turnComplete"`
		Interrupted  bool `json:"interrupted"`
	} `json:"serverContent"`
	ToolCall *struct {
		FunctionCalls []FunctionCall `json:"functionCalls"`
	} `json:"toolCall"`
}

func (b *Bridge) setupMessage(instruction string) map[string]any {
	return map[string]any{
		"setup": map[string]any{
			"model": "models/" + b.cfg.Model,
			"generationConfig": map[string]any{
				"responseModalities": []string{"AUDIO"},
				"speechConfig": map[string]any{
					"voiceConfig": map[string]any{
						"prebuiltVoiceConfig": map[string]string{"voiceName": b.cfg.Voice},
					},
				},
			},
			"systemInstruction": map[string]any{
				"parts": []map[string]string{{"text": instruction}},
			},
			"tools": []map[string]any{
				{"functionDeclarations": []map[string]any{ToolDeclaration()}},
			},
			"inputAudioTranscription":  map[string]any{},
			"outputAudioTranscription": map[string]any{},
		},
	}
}

func audioInput(data string) map[string]any {
	return map[string]any{
		"realtimeInput": map[string]any{
			"mediaChunks": []map[string]string{{"mimeType": inputMimeType, "data": data}},
		},
	}
}

func (b *Bridge) upstreamURL() (string, error) {
	u, err := url.Parse(b.cfg.URL)
	if err != nil {
		return "", err
	}
	if b.cfg.APIKey != "" {
		q := u.Query()
		q.Set("key", b.cfg.APIKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// --------------------------------------------------
// Serve
// --------------------------------------------------

// Serve upgrades the browser request and relays until either side closes
// or ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, tools *ToolHandler, instruction string) error {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[VOICE] upgrade error: %v", err)
		return err
	}
	browser := &lockedConn{Conn: conn}
	defer browser.Close()

	target, err := b.upstreamURL()
	if err != nil {
		b.fail(browser, err)
		return err
	}

	upConn, _, err := b.dialer.DialContext(ctx, target, nil)
	if err != nil {
		b.fail(browser, err)
		return err
	}
	upstream := &lockedConn{Conn: upConn}
	defer upstream.Close()

	if err := upstream.writeJSON(b.setupMessage(instruction)); err != nil {
		b.fail(browser, err)
		return err
	}

	log.Println("[VOICE] live session started")

	var once sync.Once
	done := make(chan struct{})
	stop := func() {
		once.Do(func() {
			close(done)
			_ = browser.Close()
			_ = upstream.Close()
		})
	}

	var wg sync.WaitGroup
	var upstreamErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer stop()
		b.relayBrowser(browser, upstream)
	}()
	go func() {
		defer wg.Done()
		defer stop()
		upstreamErr = b.relayUpstream(upstream, browser, tools)
	}()

	select {
	case <-ctx.Done():
		stop()
	case <-done:
	}
	wg.Wait()

	log.Println("[VOICE] live session closed")
	return upstreamErr
}

func (b *Bridge) fail(browser *lockedConn, err error) {
	log.Printf("[VOICE] live session error: %v", err)
	_ = browser.writeJSON(Frame{Type: "status", Message: statusFailed})
	_ = browser.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "upstream unavailable"),
		time.Now().Add(writeWait),
	)
}

// relayBrowser forwards microphone audio. Binary frames are raw 16 kHz PCM;
// text frames are Frame values of type "audio" carrying base64 data.
func (b *Bridge) relayBrowser(browser, upstream *lockedConn) {
	for {
		msgType, data, err := browser.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[VOICE] browser read error: %v", err)
			}
			return
		}

		var chunk string
		switch msgType {
		case websocket.BinaryMessage:
			chunk = base64.StdEncoding.EncodeToString(data)
		case websocket.TextMessage:
			var f Frame
			if err := json.Unmarshal(data, &f); err != nil || f.Type != "audio" {
				continue
			}
			chunk = f.Data
		}
		if chunk == "" {
			continue
		}

		if err := upstream.writeJSON(audioInput(chunk)); err != nil {
			log.Printf("[VOICE] upstream write error: %v", err)
			return
		}
	}
}

// relayUpstream forwards model audio and transcripts, and answers tool
// calls upstream before telling the browser the bill changed.
func (b *Bridge) relayUpstream(upstream, browser *lockedConn, tools *ToolHandler) error {
	for {
		_, data, err := upstream.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			b.fail(browser, err)
			return err
		}

		var msg upstreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[VOICE] bad upstream message: %v", err)
			continue
		}

		if msg.SetupComplete != nil {
			_ = browser.writeJSON(Frame{Type: "ready"})
		}

		if msg.ToolCall != nil && len(msg.ToolCall.FunctionCalls) > 0 {
			responses := tools.Handle(msg.ToolCall.FunctionCalls)
			err := upstream.writeJSON(map[string]any{
				"toolResponse": map[string]any{"functionResponses": responses},
			})
			if err != nil {
				return err
			}
			for _, r := range responses {
				_ = browser.writeJSON(Frame{Type: "toolResult", Message: r.Response["result"]})
			}
		}

		if sc := msg.ServerContent; sc != nil {
			if sc.ModelTurn != nil {
				for _, p := range sc.ModelTurn.Parts {
					if p.InlineData != nil && p.InlineData.Data != "" {
						_ = browser.writeJSON(Frame{Type: "audio", Data: p.InlineData.Data})
					}
				}
			}
			if sc.InputTranscription != nil && sc.InputTranscription.Text != "" {
				_ = browser.writeJSON(Frame{Type: "transcript", Role: "user", Text: sc.InputTranscription.Text})
			}
			if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" {
				_ = browser.writeJSON(Frame{Type: "transcript", Role: "model", Text: sc.OutputTranscription.Text})
			}
			if sc.Interrupted {
				_ = browser.writeJSON(Frame{Type: "interrupted"})
			}
			if sc.TurnComplete {
				_ = browser.writeJSON(Frame{Type: "turnComplete"})
			}
		}
	}
}
