package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
	"watchpoint/pkg/config"
)

// Notifier mirrors published recruitments to an external channel. A nil
// Notifier disables mirroring.
type Notifier interface {
	AnnounceRecruitment(rec *models.Recruitment, slots []models.TimeSlot) error
}

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger
	notifier Notifier

	adminIDs      map[string]struct{}
	guildID       string
	quizChannelID string

	commands []*discordgo.ApplicationCommand
}

func NewBot(cfg *config.Config, services *application.Service, notifier Notifier, logger application.Logger) *Bot {
	s, _ := discordgo.New("Bot " + cfg.DiscordToken)
	s.Identify.Intents |= discordgo.IntentGuildMessages | discordgo.IntentMessageContent | discordgo.IntentGuildVoiceStates

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	return &Bot{
		session:       s,
		services:      services,
		logger:        logger,
		notifier:      notifier,
		adminIDs:      admins,
		guildID:       cfg.GuildID,
		quizChannelID: cfg.QuizChannel,
	}
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	b.session.AddHandler(b.onMessage)
	b.session.AddHandler(b.onVoiceState)

	b.addCommands(
		b.newRegisterCommand(),
		b.newTierCommand(),
		b.newMembersCommand(),
		b.newClanCommand(),
		b.newScrimCommand(),
		b.newRecordCommand(),
		b.newCancelMatchCommand(),
		b.newProfileCommand(),
		b.newLeaderboardCommand(),
		b.newExportCommand(),
		b.newBalanceCommand(),
		b.newQuizCommand(),
		b.newVoiceCommand(),
		b.newVoiceTopCommand(),
		b.newTicketCommand(),
		b.newTicketsCommand(),
		b.newTicketAnswerCommand(),
		b.newTicketCloseCommand(),
	)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord Bot Started. Registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
	} else {
		b.logger.Info("Slash commands registered successfully")
	}

	return nil
}

func (b *Bot) Stop() {
	if err := b.services.Voice.FlushOpenSessions(); err != nil {
		b.logger.Error("Failed to flush voice sessions on shutdown: %v", err)
	}
	b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Interaction handler panicked: %v", r)
			// best effort; fails silently when the interaction was
			// already acknowledged
			b.respondMessage(s, i.Interaction, "처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.", true)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i.Interaction)
	case discordgo.InteractionMessageComponent:
		b.dispatchComponent(s, i.Interaction)
	case discordgo.InteractionModalSubmit:
		b.dispatchModal(s, i.Interaction)
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.Interaction) {
	switch i.ApplicationCommandData().Name {
	case "register":
		b.handleRegister(s, i)
	case "tier":
		b.handleTier(s, i)
	case "members":
		b.handleMembers(s, i)
	case "clan":
		b.handleClan(s, i)
	case "scrim":
		b.ensureRegistered(s, i, b.handleScrimStart)
	case "record":
		b.ensureRegistered(s, i, b.handleRecordStart)
	case "cancel_match":
		b.ensureAdmin(s, i, b.handleCancelMatch)
	case "profile":
		b.handleProfile(s, i)
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "export":
		b.ensureAdmin(s, i, b.handleExport)
	case "balance":
		b.handleBalance(s, i)
	case "quiz":
		b.handleQuiz(s, i)
	case "voice":
		b.handleVoice(s, i)
	case "voice_top":
		b.handleVoiceTop(s, i)
	case "ticket":
		b.handleTicketCreate(s, i)
	case "tickets":
		b.ensureAdmin(s, i, b.handleTicketList)
	case "ticket_answer":
		b.ensureAdmin(s, i, b.handleTicketAnswer)
	case "ticket_close":
		b.ensureAdmin(s, i, b.handleTicketClose)
	}
}

func (b *Bot) dispatchComponent(s *discordgo.Session, i *discordgo.Interaction) {
	prefix, args := customIDParts(i.MessageComponentData().CustomID)

	switch prefix {
	case cidScrimOpponentSelect, cidScrimDates, cidScrimTimes, cidScrimTier,
		cidScrimDeadlineButton, cidScrimDescButton,
		cidScrimPublish, cidScrimDiscard:
		b.handleScrimComponent(s, i, prefix, args)
	case cidSignupRole:
		b.handleSignupRole(s, i, args)
	case cidSignupSlots:
		b.handleSignupSlots(s, i, args)
	case cidFinalize:
		b.ensureRecruitmentManager(s, i, parseID(args[0]), func(s *discordgo.Session, i *discordgo.Interaction) {
			b.handleFinalizeOpen(s, i, args)
		})
	case cidFinalizePick:
		b.ensureRecruitmentManager(s, i, parseID(args[0]), func(s *discordgo.Session, i *discordgo.Interaction) {
			b.handleFinalizePick(s, i, args)
		})
	case cidRecCancel:
		b.ensureRecruitmentManager(s, i, parseID(args[0]), func(s *discordgo.Session, i *discordgo.Interaction) {
			b.handleRecruitmentCancel(s, i, args)
		})
	default:
		if strings.HasPrefix(prefix, "rec_") {
			b.handleRecordingComponent(s, i, prefix, args)
		}
	}
}

func (b *Bot) dispatchModal(s *discordgo.Session, i *discordgo.Interaction) {
	data := i.ModalSubmitData()
	prefix, _ := customIDParts(data.CustomID)

	switch prefix {
	case cidScrimOpponentModal, cidScrimTimeModal, cidScrimDeadlineModal, cidScrimDescModal:
		b.handleScrimModal(s, i, prefix, data)
	case cidTicketModal:
		b.handleTicketModal(s, i, data)
	}
}

// onMessage feeds plain chat text into the running quiz round of the
// configured quiz channel.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if b.quizChannelID != "" && m.ChannelID != b.quizChannelID {
		return
	}
	b.handleQuizGuess(s, m)
}

func (b *Bot) onVoiceState(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.GuildID == "" {
		return
	}
	if err := b.services.Voice.HandleVoiceState(v.GuildID, v.UserID, v.ChannelID); err != nil {
		b.logger.Error("Voice state handling failed: %v", err)
	}
}
