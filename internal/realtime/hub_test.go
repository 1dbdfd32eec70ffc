package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/backend/internal/models"
)

type fakeConn struct {
	frames   []Event
	writeErr error
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.frames = append(f.frames, v.(Event))
	return nil
}

func (f *fakeConn) Close() error { return nil }

func joinFake(h *Hub, ref models.IdentityRef) *fakeConn {
	conn := &fakeConn{}
	h.join(&connection{conn: conn, ref: ref})
	return conn
}

func adminRef(id uint) models.IdentityRef {
	return models.IdentityRef{ID: id, Kind: models.KindAdmin}
}

func verifiedRef(id uint) models.IdentityRef {
	return models.IdentityRef{ID: id, Kind: models.KindVerified}
}

func TestEmitReachesOnlyRecipientRoom(t *testing.T) {
	h := NewHub("secret")

	alice := joinFake(h, adminRef(1))
	bob := joinFake(h, adminRef(2))

	h.Emit(adminRef(1), "receiveNotification", map[string]string{"message": "hi"})

	require.Len(t, alice.frames, 1)
	assert.Equal(t, "receiveNotification", alice.frames[0].Event)
	assert.Empty(t, bob.frames)
}

func TestEmitDoesNotCrossIdentityKinds(t *testing.T) {
	h := NewHub("secret")

	// The stores issue ids independently, so admin #1 and verified user #1
	// are different people. An admin-addressed event must not reach the
	// verified user's session sharing the numeric id.
	admin := joinFake(h, adminRef(1))
	verified := joinFake(h, verifiedRef(1))

	h.Emit(adminRef(1), "receiveNotification", map[string]string{"message": "Carol applied to adopt Rex"})

	require.Len(t, admin.frames, 1)
	assert.Empty(t, verified.frames)

	h.Emit(verifiedRef(1), "receiveUserNotification", nil)
	assert.Len(t, admin.frames, 1)
	assert.Len(t, verified.frames, 1)
}

func TestEmitToEmptyRoomIsNoOp(t *testing.T) {
	h := NewHub("secret")
	h.Emit(verifiedRef(42), "receiveMessage", nil)
}

func TestEmitFanOutToAllSessions(t *testing.T) {
	h := NewHub("secret")

	first := joinFake(h, verifiedRef(1))
	second := joinFake(h, verifiedRef(1))

	h.Emit(verifiedRef(1), "receiveUserNotification", "payload")

	assert.Len(t, first.frames, 1)
	assert.Len(t, second.frames, 1)
}

func TestLeaveStopsDelivery(t *testing.T) {
	h := NewHub("secret")

	conn := &fakeConn{}
	c := &connection{conn: conn, ref: verifiedRef(1)}
	h.join(c)
	h.leave(c)

	h.Emit(verifiedRef(1), "receiveMessage", nil)
	assert.Empty(t, conn.frames)
}

func TestEmitSurvivesWriteFailure(t *testing.T) {
	h := NewHub("secret")

	broken := &fakeConn{writeErr: errors.New("gone")}
	h.join(&connection{conn: broken, ref: verifiedRef(1)})
	healthy := joinFake(h, verifiedRef(1))

	h.Emit(verifiedRef(1), "receiveMessage", "x")
	assert.Len(t, healthy.frames, 1)
}
