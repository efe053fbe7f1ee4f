package chat

import "testing"

func lastOf(p *fakePeer) string {
	if len(p.delivered) == 0 {
		return ""
	}
	return p.delivered[len(p.delivered)-1]
}

func TestDispatchRenameBroadcastsGlobally(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "")
	_, bobPeer := registerNamed(t, b, "")

	b.Dispatch(alice, "/name alice")

	want := "[system] anon1 is now known as alice.\n"
	found := false
	for _, line := range bobPeer.delivered {
		if line == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected bob to observe the rename broadcast %q, got %v", want, bobPeer.delivered)
	}
	_ = alicePeer
}

func TestDispatchCreateThenJoinScenario(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")
	bob, bobPeer := registerNamed(t, b, "anon2")

	b.Dispatch(alice, "/create chess secret")

	if lastOf(alicePeer) == "" {
		t.Fatalf("expected alice to receive a reply after /create")
	}

	b.Dispatch(bob, "/join chess")
	if got := lastOf(bobPeer); got != "[system] Unable to join room. Check name or password.\n" {
		t.Errorf("expected auth rejection, got %q", got)
	}

	b.Dispatch(bob, "/join chess secret")
	found := false
	for _, line := range bobPeer.delivered {
		if line == "ROOM|chess\n" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected bob to receive ROOM|chess after a successful join, got %v", bobPeer.delivered)
	}
}

func TestDispatchRoomChatEchoesToSender(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)
	b.ChangeRoom(alice, "chess", "")
	alicePeer.delivered = nil

	b.Dispatch(alice, "hello")

	if got := lastOf(alicePeer); got != "[chess] alice: hello\n" {
		t.Errorf("expected sender to see the canonical echo, got %q", got)
	}
}

func TestDispatchPrivateMessageReachesBothParties(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")
	_, bobPeer := registerNamed(t, b, "anon2")

	b.Dispatch(alice, "/msg anon2 ping")

	if got := lastOf(alicePeer); got != "[private] alice: ping\n" {
		t.Errorf("expected sender echo, got %q", got)
	}
	if got := lastOf(bobPeer); got != "[private] alice: ping\n" {
		t.Errorf("expected target delivery, got %q", got)
	}

	b.Dispatch(alice, "/msg ghost ping")
	if got := lastOf(alicePeer); got != "[system] User not found: ghost\n" {
		t.Errorf("expected user-not-found reply, got %q", got)
	}
}

func TestDispatchOwnerDeleteMigratesMembers(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)
	b.ChangeRoom(alice, "chess", "")
	bob, bobPeer := registerNamed(t, b, "anon2")
	b.ChangeRoom(bob, "chess", "")

	b.Dispatch(alice, "/delete chess")

	foundRoomLine, foundSystemLine := false, false
	for _, line := range bobPeer.delivered {
		if line == "ROOM|Lobby\n" {
			foundRoomLine = true
		}
		if line == "[system] Room deleted. You have been moved to Lobby.\n" {
			foundSystemLine = true
		}
	}
	if !foundRoomLine || !foundSystemLine {
		t.Errorf("expected bob to be notified of migration, got %v", bobPeer.delivered)
	}
}

func TestDispatchDeleteRejectsNonOwner(t *testing.T) {
	b := newTestBroker()
	alice, _ := registerNamed(t, b, "alice")
	b.Rooms.Create("chess", "", alice)
	bob, bobPeer := registerNamed(t, b, "anon2")
	b.ChangeRoom(bob, "chess", "")

	b.Dispatch(bob, "/delete chess")
	if got := lastOf(bobPeer); got != "[system] Only the room owner can delete it.\n" {
		t.Errorf("expected owner-only rejection, got %q", got)
	}
}

func TestDispatchLeaveAlreadyInLobby(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")

	b.Dispatch(alice, "/leave")
	if got := lastOf(alicePeer); got != "[system] You are already in the Lobby.\n" {
		t.Errorf("expected already-in-Lobby reply, got %q", got)
	}
}

func TestDispatchUnknownCommandRejected(t *testing.T) {
	b := newTestBroker()
	alice, alicePeer := registerNamed(t, b, "alice")

	b.Dispatch(alice, "/bogus")
	if got := lastOf(alicePeer); got != "[system] Unknown command: /bogus\n" {
		t.Errorf("expected unknown-command rejection, got %q", got)
	}
}
