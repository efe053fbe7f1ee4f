package chat

import "testing"

func newTestBroker() *Broker {
	return NewBroker(nil, "")
}

func registerNamed(t *testing.T, b *Broker, name string) (Handle, *fakePeer) {
	t.Helper()
	peer := &fakePeer{}
	handle, placeholder := b.Clients.Register(peer)
	b.Rooms.Join(handle, LobbyName, "")
	if name != "" && name != placeholder {
		if err := b.Clients.Rename(handle, name); err != nil {
			t.Fatalf("rename setup failed: %v", err)
		}
	}
	return handle, peer
}

func TestBrokerChangeRoomMovesMembershipAtomically(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)

	result, err := b.ChangeRoom(alice, "chess", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FromRoom != LobbyName || result.ToRoom != "chess" {
		t.Errorf("unexpected result: %+v", result)
	}

	lobbyMembers := b.Rooms.Members(LobbyName)
	for _, h := range lobbyMembers {
		if h == alice {
			t.Errorf("expected alice removed from Lobby membership")
		}
	}
	chessMembers := b.Rooms.Members("chess")
	if len(chessMembers) != 1 || chessMembers[0] != alice {
		t.Errorf("expected alice to be the sole chess member, got %v", chessMembers)
	}
}

func TestBrokerChangeRoomRejectsWrongPassword(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "secret", alice)

	bob, _ := registerNamed(t, b, "bob")
	if _, err := b.ChangeRoom(bob, "chess", "wrong"); err == nil {
		t.Fatalf("expected wrong password to be rejected")
	}
}

func TestBrokerChangeRoomToCurrentRoomIsNoOp(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")

	result, err := b.ChangeRoom(alice, LobbyName, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NoOp {
		t.Errorf("expected joining the current room to report NoOp")
	}
}

func TestBrokerDeleteRoomMigratesMembersToLobby(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)
	bob, _ := registerNamed(t, b, "bob")
	b.ChangeRoom(alice, "chess", "")
	b.ChangeRoom(bob, "chess", "")

	result, err := b.DeleteRoom("chess", alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Migrated) != 2 {
		t.Fatalf("expected both members migrated, got %d", len(result.Migrated))
	}

	for _, snap := range result.Migrated {
		got, _ := b.Clients.Get(snap.Handle)
		if got.Room != LobbyName {
			t.Errorf("expected %s migrated to Lobby, got %s", got.Name, got.Room)
		}
	}
	if b.Rooms.Exists("chess") {
		t.Errorf("expected chess to no longer exist")
	}
}

func TestBrokerDeleteRoomRejectsNonOwner(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)
	bob, _ := registerNamed(t, b, "bob")

	if _, err := b.DeleteRoom("chess", bob); err == nil {
		t.Fatalf("expected non-owner delete to be rejected")
	}
}

func TestBrokerBroadcastRoomExcludesSenderWhenAsked(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")
	_, bobPeer := registerNamed(t, b, "bob")

	b.BroadcastRoom(LobbyName, "hello", alice)

	if len(alicePeer.delivered) != 0 {
		t.Errorf("expected sender to be excluded, got %v", alicePeer.delivered)
	}
	if len(bobPeer.delivered) != 1 {
		t.Errorf("expected the other room member to receive the broadcast")
	}
}

func TestBrokerSendPrivateDeliversToTargetOnly(t *testing.T) {
	b := newTestBroker()
	_, alicePeer := registerNamed(t, b, "alice")
	_, bobPeer := registerNamed(t, b, "bob")

	if !b.SendPrivate("bob", "alice", "ping") {
		t.Fatalf("expected delivery to a live target to succeed")
	}
	if len(bobPeer.delivered) != 1 {
		t.Errorf("expected bob to receive exactly one private line")
	}
	if len(alicePeer.delivered) != 0 {
		t.Errorf("SendPrivate itself should not also deliver to the sender")
	}

	if b.SendPrivate("ghost", "alice", "ping") {
		t.Errorf("expected delivery to an unknown target to fail")
	}
}
