package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"webchat/domain/chat"
	errs "webchat/errors"
	"webchat/infrastructure/httpapi"
	"webchat/infrastructure/storage"
	"webchat/mocks"
	"webchat/runtime"
	"webchat/services"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEngine(t *testing.T, service services.IChatService) *gin.Engine {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	loc, err := chat.LoadLocation("")
	require.NoError(t, err)
	return httpapi.NewRouter(log, service, http.NotFoundHandler(), "*", loc)
}

func newService(t *testing.T, clock func() time.Time) *services.ChatService {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	loc, err := chat.LoadLocation("")
	require.NoError(t, err)
	repository, err := storage.OpenBadger(t.TempDir(), log, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	registry := runtime.NewRegistry()
	return services.NewChatService(log, repository, registry, runtime.NewRouter(log, registry, time.Second), loc, time.Second).
		WithClock(clock)
}

func do(t *testing.T, engine http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	request := httptest.NewRequest(method, path, &payload)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	var decoded map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

func TestRouter_Open_Then_Fetch_Chat(t *testing.T) {
	req := require.New(t)
	service := newService(t, func() time.Time { return time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC) })
	engine := newEngine(t, service)

	// When a client opens a chat
	status, body := do(t, engine, http.MethodPost, "/iniciar_chat", map[string]string{"nome": "Ana", "email": "ana@x.com"})

	// Then the protocol is returned
	req.Equal(http.StatusOK, status)
	req.Equal(map[string]any{"status": "chat_iniciado", "protocolo": "010524100000", "nome": "Ana", "email": "ana@x.com"}, body)

	// And the history is empty
	status, body = do(t, engine, http.MethodGet, "/buscar_chat/010524100000", nil)
	req.Equal(http.StatusOK, status)
	req.Equal(map[string]any{"protocolo": "010524100000", "nome": "Ana", "email": "ana@x.com", "mensagens": []any{}}, body)
}

func TestRouter_Open_Chat_Missing_Fields(t *testing.T) {
	req := require.New(t)
	engine := newEngine(t, newService(t, time.Now))

	bodies := []any{
		map[string]string{"nome": "Ana"},
		map[string]string{"email": "ana@x.com"},
		map[string]string{"nome": "", "email": ""},
		nil,
	}
	for _, b := range bodies {
		status, body := do(t, engine, http.MethodPost, "/iniciar_chat", b)
		req.Equal(http.StatusBadRequest, status)
		req.Equal(map[string]any{"status": "error", "message": "Nome e email são obrigatórios"}, body)
	}

	_, body := do(t, engine, http.MethodGet, "/chats_abertos", nil)
	req.Empty(body["chats"])
}

func TestRouter_Open_Chat_Same_Second_Collides(t *testing.T) {
	req := require.New(t)
	engine := newEngine(t, newService(t, func() time.Time { return time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC) }))

	status, _ := do(t, engine, http.MethodPost, "/iniciar_chat", map[string]string{"nome": "Ana", "email": "ana@x.com"})
	req.Equal(http.StatusOK, status)

	status, body := do(t, engine, http.MethodPost, "/iniciar_chat", map[string]string{"nome": "Bia", "email": "bia@x.com"})
	req.Equal(http.StatusInternalServerError, status)
	req.Equal("error", body["status"])
	req.Contains(body["message"], "Erro ao criar chat, tente novamente. Detalhe: ")
}

func TestRouter_Fetch_Unknown_Chat(t *testing.T) {
	req := require.New(t)
	engine := newEngine(t, newService(t, time.Now))

	status, body := do(t, engine, http.MethodGet, "/buscar_chat/999999999999", nil)

	req.Equal(http.StatusNotFound, status)
	req.Equal(map[string]any{"status": "error", "message": "Protocolo não encontrado."}, body)
}

func TestRouter_List_Open_Chats(t *testing.T) {
	req := require.New(t)
	now := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)
	service := newService(t, func() time.Time { return now })
	engine := newEngine(t, service)

	// Given two chats, the older one with a message
	do(t, engine, http.MethodPost, "/iniciar_chat", map[string]string{"nome": "Ana", "email": "ana@x.com"})
	req.NoError(service.SendMessage(t.Context(), chat.PostMessageCommand{Protocol: "010524100000", Sender: "cliente", Text: "oi"}))
	now = now.Add(time.Minute)
	do(t, engine, http.MethodPost, "/iniciar_chat", map[string]string{"nome": "Bia", "email": "bia@x.com"})

	// When listing
	status, body := do(t, engine, http.MethodGet, "/chats_abertos", nil)

	// Then both come by start time
	req.Equal(http.StatusOK, status)
	req.Equal("success", body["status"])
	chats := body["chats"].([]any)
	req.Len(chats, 2)
	req.Equal(map[string]any{
		"id":            "010524100000",
		"cliente_nome":  "Ana",
		"cliente_email": "ana@x.com",
		"data_inicio":   "2024-05-01 10:00:00",
		"status":        "aberto",
		"ultima_mensagem": map[string]any{
			"remetente": "cliente",
			"texto":     "oi",
			"data_hora": "10:00:00",
		},
	}, chats[0])
	second := chats[1].(map[string]any)
	req.Equal("010524100100", second["id"])
	req.Nil(second["ultima_mensagem"])
}

func TestRouter_List_Open_Chats_Hides_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIChatService(ctrl)
	engine := newEngine(t, service)

	service.EXPECT().ListOpenChats(gomock.Any()).Return(nil, fmt.Errorf("%w: disk full", errs.ErrPersistence))

	status, body := do(t, engine, http.MethodGet, "/chats_abertos", nil)

	req.Equal(http.StatusInternalServerError, status)
	req.Equal(map[string]any{"status": "error", "message": "Erro ao buscar chats abertos."}, body)
}

func TestRouter_Fetch_Chat_Hides_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIChatService(ctrl)
	engine := newEngine(t, service)

	service.EXPECT().GetChat(gomock.Any(), "010524100000").
		Return(chat.Chat{}, nil, fmt.Errorf("%w: disk full", errs.ErrPersistence))

	status, body := do(t, engine, http.MethodGet, "/buscar_chat/010524100000", nil)

	req.Equal(http.StatusInternalServerError, status)
	req.Equal(map[string]any{"status": "error", "message": "Erro ao buscar chat."}, body)
}

func TestRouter_Cors_Preflight(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	engine := httpapi.NewRouter(log, mocks.NewMockIChatService(ctrl), http.NotFoundHandler(), "http://app.example", time.UTC)

	request := httptest.NewRequest(http.MethodOptions, "/iniciar_chat", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	req.Equal(http.StatusNoContent, recorder.Code)
	req.Equal("http://app.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}
