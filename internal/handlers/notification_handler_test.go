package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/backend/internal/models"
)

func seedNotification(t *testing.T, repo *fakeNotificationRepo, recipientID uint, kind models.RecipientKind) *models.Notification {
	t.Helper()
	n := &models.Notification{
		RecipientID:   recipientID,
		RecipientKind: kind,
		Message:       "Carol applied to adopt Rex",
		Category:      "adoption",
	}
	require.NoError(t, repo.CreateNotification(context.Background(), n))
	return n
}

func TestGetNotificationsScopedToCaller(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)
	e := newTestEcho()

	mine := seedNotification(t, repo, 1, models.RecipientAdmin)
	seedNotification(t, repo, 2, models.RecipientAdmin)
	// Same numeric id in the verified store must not leak into the admin feed.
	seedNotification(t, repo, 1, models.RecipientVerified)

	c, rec := newTestContext(e, http.MethodGet, "/notifications", "", adminClaims)
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, mine.ID.Hex(), resp.Data[0].ID.Hex())
}

func TestGetUserNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)
	e := newTestEcho()

	seedNotification(t, repo, 7, models.RecipientVerified)
	seedNotification(t, repo, 7, models.RecipientVerified)
	seedNotification(t, repo, 8, models.RecipientVerified)

	c, rec := newTestContext(e, http.MethodGet, "/notifications/user/:userId", "", adminClaims)
	c.SetParamNames("userId")
	c.SetParamValues("7")
	require.NoError(t, h.GetUserNotifications(c))

	var resp struct {
		Data []models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestGetUnreadCount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)
	e := newTestEcho()

	seedNotification(t, repo, 1, models.RecipientAdmin)
	read := seedNotification(t, repo, 1, models.RecipientAdmin)
	require.NoError(t, repo.MarkAsRead(context.Background(), read.ID.Hex()))

	c, rec := newTestContext(e, http.MethodGet, "/notifications/unread-count", "", adminClaims)
	require.NoError(t, h.GetUnreadCount(c))

	var resp struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Count)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)
	e := newTestEcho()

	n := seedNotification(t, repo, 1, models.RecipientAdmin)

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(e, http.MethodPut, "/notifications/:id/read", "", adminClaims)
		c.SetParamNames("id")
		c.SetParamValues(n.ID.Hex())
		require.NoError(t, h.MarkAsRead(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.True(t, repo.notifications[0].Read)
}

func TestMarkAsReadUnknownID(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := NewNotificationHandler(repo)
	e := newTestEcho()

	c, _ := newTestContext(e, http.MethodPut, "/notifications/:id/read", "", adminClaims)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")

	assert.Equal(t, http.StatusNotFound, httpCode(h.MarkAsRead(c)))
}
