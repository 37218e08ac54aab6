package application

import (
	"testing"
	"time"
)

func newVoiceService(repo *fakeVoiceRepo) (*VoiceServiceImpl, *time.Time) {
	svc := NewVoiceServiceImpl(repo, nopLogger{})
	now := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestVoiceJoinLeaveCreditsTime(t *testing.T) {
	repo := newFakeVoiceRepo()
	svc, now := newVoiceService(repo)

	if err := svc.HandleVoiceState("g1", "u1", "voice-1"); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(10 * time.Minute)
	if err := svc.HandleVoiceState("g1", "u1", ""); err != nil {
		t.Fatal(err)
	}

	seconds, _ := svc.TotalSeconds("g1", "u1")
	if seconds != 600 {
		t.Errorf("seconds = %d, want 600", seconds)
	}
}

func TestVoiceLeaveWithoutJoinIsIgnored(t *testing.T) {
	repo := newFakeVoiceRepo()
	svc, _ := newVoiceService(repo)

	if err := svc.HandleVoiceState("g1", "u1", ""); err != nil {
		t.Fatal(err)
	}
	if len(repo.seconds) != 0 {
		t.Error("leave without a session must not credit time")
	}
}

func TestVoiceChannelSwitchDoesNotDoubleCount(t *testing.T) {
	repo := newFakeVoiceRepo()
	svc, now := newVoiceService(repo)

	svc.HandleVoiceState("g1", "u1", "voice-1")
	*now = now.Add(5 * time.Minute)
	svc.HandleVoiceState("g1", "u1", "voice-2") // switch closes and reopens
	*now = now.Add(3 * time.Minute)
	svc.HandleVoiceState("g1", "u1", "")

	seconds, _ := svc.TotalSeconds("g1", "u1")
	if seconds != 480 {
		t.Errorf("seconds = %d, want 480", seconds)
	}
}

func TestVoiceSameChannelUpdateIsNoop(t *testing.T) {
	repo := newFakeVoiceRepo()
	svc, now := newVoiceService(repo)

	svc.HandleVoiceState("g1", "u1", "voice-1")
	*now = now.Add(5 * time.Minute)
	svc.HandleVoiceState("g1", "u1", "voice-1") // mute/deafen updates keep the session
	*now = now.Add(5 * time.Minute)
	svc.HandleVoiceState("g1", "u1", "")

	seconds, _ := svc.TotalSeconds("g1", "u1")
	if seconds != 600 {
		t.Errorf("seconds = %d, want 600", seconds)
	}
}

func TestFlushOpenSessions(t *testing.T) {
	repo := newFakeVoiceRepo()
	svc, now := newVoiceService(repo)

	svc.HandleVoiceState("g1", "u1", "voice-1")
	*now = now.Add(4 * time.Minute)
	if err := svc.FlushOpenSessions(); err != nil {
		t.Fatal(err)
	}

	seconds, _ := svc.TotalSeconds("g1", "u1")
	if seconds != 240 {
		t.Errorf("seconds after flush = %d, want 240", seconds)
	}

	// the session keeps running from the flush point
	*now = now.Add(2 * time.Minute)
	svc.HandleVoiceState("g1", "u1", "")
	seconds, _ = svc.TotalSeconds("g1", "u1")
	if seconds != 360 {
		t.Errorf("seconds after leave = %d, want 360", seconds)
	}
}
