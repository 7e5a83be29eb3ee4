package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type BaseSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration and skips without a server
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("E2E_SERVER_ADDR not set")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *BaseSuite) header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Call sends a JSON request and decodes the JSON answer.
func (s *BaseSuite) Call(name, method, path string, body any) (int, map[string]any) {
	s.header(name)
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		payload = bytes.NewReader(raw)
	}
	request, err := http.NewRequest(method, "http://"+s.Config.ServerAddr+path, payload)
	s.Require().NoError(err)
	request.Header.Set("Content-Type", "application/json")

	start := time.Now()
	response, err := s.client.Do(request)
	s.Require().NoError(err)
	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	s.Require().NoError(err)
	s.T().Logf("HTTP %s %s [%d] in %v", method, path, response.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		s.T().Logf("RESPONSE:\n%s", raw)
	}

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	return response.StatusCode, decoded
}

// Dial opens a WebSocket connection closed at the end of the test.
func (s *BaseSuite) Dial(name string) *websocket.Conn {
	s.header(name)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Config.ServerAddr+"/ws", nil)
	s.Require().NoError(err, "Failed to connect to "+s.Config.ServerAddr)
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *BaseSuite) Emit(conn *websocket.Conn, event string, data any) {
	raw, err := json.Marshal(data)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteJSON(map[string]any{"event": event, "data": json.RawMessage(raw)}))
}

// Expect reads frames until one named event arrives.
func (s *BaseSuite) Expect(conn *websocket.Conn, event string) map[string]any {
	deadline := time.Now().Add(5 * time.Second)
	s.Require().NoError(conn.SetReadDeadline(deadline))
	for {
		var frame struct {
			Event string         `json:"event"`
			Data  map[string]any `json:"data"`
		}
		s.Require().NoError(conn.ReadJSON(&frame), "waiting for "+event)
		if s.Config.DebugJSON {
			s.T().Logf("FRAME %s: %v", frame.Event, frame.Data)
		}
		if frame.Event == event {
			return frame.Data
		}
	}
}

// Health queries the gRPC health endpoint when one is configured.
func (s *BaseSuite) Health(name string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	s.header(name)
	conn, err := grpc.NewClient(s.Config.HealthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	response, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	s.Require().NoError(err)
	return response.GetStatus()
}
