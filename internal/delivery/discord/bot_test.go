package discord

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type testLogger struct{}

func (testLogger) Error(format string, v ...interface{}) {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Debug(format string, v ...interface{}) {}

type refusingTransport struct{}

func (refusingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("no network in tests")
}

func offlineSession(t *testing.T) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatal(err)
	}
	s.Client = &http.Client{Transport: refusingTransport{}, Timeout: time.Second}
	return s
}

func TestOnInteractionRecoversFromHandlerPanic(t *testing.T) {
	bot := &Bot{logger: testLogger{}}
	s := offlineSession(t)

	// a command interaction without data makes the dispatcher panic on
	// the type assertion inside ApplicationCommandData
	event := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "g1",
		},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic escaped the interaction handler: %v", r)
		}
	}()
	bot.onInteraction(s, event)
}
