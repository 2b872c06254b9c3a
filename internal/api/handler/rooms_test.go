package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnichat/backend/internal/models"
)

func TestGetChatRooms(t *testing.T) {
	rooms := new(MockRoomReader)
	h := NewHandler(nil, nil, rooms, "", "test-secret")
	router := newTestRouter(h)

	now := time.Now().UTC().Truncate(time.Second)
	rooms.On("ListRooms").Return([]models.ChatRoom{
		{ID: 2, Name: "line - U1", Platform: models.PlatformLine, SenderID: "U1", CreatedAt: now},
		{ID: 1, Name: "facebook - fb-1", Platform: models.PlatformFacebook, SenderID: "fb-1", CreatedAt: now.Add(-time.Hour)},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat-rooms", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []roomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID, "newest room first")
	assert.Equal(t, "line - U1", got[0].Name)
	assert.Equal(t, "line", got[0].Platform)
}

func TestGetChatRooms_StorageError(t *testing.T) {
	rooms := new(MockRoomReader)
	h := NewHandler(nil, nil, rooms, "", "test-secret")
	router := newTestRouter(h)

	rooms.On("ListRooms").Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat-rooms", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRoomMessages(t *testing.T) {
	rooms := new(MockRoomReader)
	h := NewHandler(nil, nil, rooms, "", "test-secret")
	router := newTestRouter(h)

	rooms.On("ListRoomMessages", uint(7)).Return([]models.ChatMessage{
		{ID: 1, RoomID: 7, SenderID: "U1", Message: "hi"},
		{ID: 2, RoomID: 7, SenderID: "U1", Message: "bye"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat-rooms/7/messages", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []messageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "hi", got[0].Message, "oldest message first")
	assert.Equal(t, "bye", got[1].Message)
}

func TestGetRoomMessages_InvalidID(t *testing.T) {
	h := NewHandler(nil, nil, new(MockRoomReader), "", "test-secret")
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat-rooms/abc/messages", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth(t *testing.T) {
	h := NewHandler(nil, nil, nil, "", "test-secret")
	router := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
