package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
)

type CommandHandler struct {
	deps *CommandDependencies
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	return &CommandHandler{
		deps: deps,
	}
}

// HandleMessage Discord 메시지를 처리합니다
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params, isDM := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params, isDM)
}

// shouldIgnoreMessage 메시지를 무시해야 하는지 확인합니다
func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// 봇 자신의 메시지는 무시
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return true
	}

	// 다른 봇의 메시지도 무시
	if m.Author.Bot {
		return true
	}

	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}

	return false
}

// parseMessage 메시지를 파싱하여 명령어와 매개변수를 추출합니다
func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string, isDM bool) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil, false
	}

	args := strings.Fields(content)
	if len(args) == 0 {
		return "", nil, false
	}

	command = strings.ToLower(args[0][constants.CommandPrefixLength:])
	if command == "" {
		return "", nil, false
	}
	params = args[1:]
	isDM = m.GuildID == ""

	return command, params, isDM
}

// routeCommand 명령어를 해당 핸들러로 라우팅합니다
func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string, isDM bool) {
	if !isKnownCommand(command) {
		return
	}

	// 명령어 사용 텔레메트리 전송
	isAdmin := !isDM && ch.isAdmin(s, m)
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCommandMetric(command, isAdmin)
	}

	switch command {
	case "help", "도움말":
		ch.handleHelp(s, m)
	case "calc", "계산":
		ch.handleCalc(s, m, params)
	case "submit", "제출":
		ch.handleSubmit(s, m, params)
	case "display", "조회":
		ch.handleDisplay(s, m)
	case "clear", "삭제":
		ch.handleClear(s, m, isAdmin)
	case "ping":
		ch.handlePing(s, m)
	}
}

var knownCommands = map[string]bool{
	"help": true, "도움말": true,
	"calc": true, "계산": true,
	"submit": true, "제출": true,
	"display": true, "조회": true,
	"clear": true, "삭제": true,
	"ping": true,
}

func isKnownCommand(command string) bool {
	return knownCommands[command]
}

// handlePing ping 명령어를 처리합니다
func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// buildSchedule 인자를 파싱하고 전체 컨트롤 스케줄을 계산합니다
func (ch *CommandHandler) buildSchedule(params []string, usage string) (*models.Submission, error) {
	args, err := parseScheduleArgs(params, usage)
	if err != nil {
		return nil, err
	}

	submission, err := ch.deps.Calculator.BuildSchedule(args.BrevetKm, args.Start, args.Controls)
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCalculationMetric("schedule", args.BrevetKm, err == nil)
	}
	return submission, err
}

func (ch *CommandHandler) handleCalc(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	submission, err := ch.buildSchedule(params, constants.MsgCalcUsage)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	for _, chunk := range formatCalcReply(submission) {
		if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
			utils.Error("DISCORD API ERROR: Failed to send calc response: %v", err)
			return
		}
	}
}

func (ch *CommandHandler) handleSubmit(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	submission, err := ch.buildSchedule(params, constants.MsgSubmitUsage)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	submission.SubmittedBy = m.Author.Username

	ctx, cancel := context.WithTimeout(context.Background(), constants.CommandStorageTimeout)
	defer cancel()

	id, err := ch.deps.Storage.Insert(ctx, *submission)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	utils.Info("Schedule %s submitted by %s (%gkm, %d controls)",
		id, m.Author.Username, submission.BrevetKm, len(submission.Controls))

	response := fmt.Sprintf(constants.MsgSubmitSuccess, submission.BrevetKm, len(submission.Controls))
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send submit response: %v", err)
	}
}

func (ch *CommandHandler) handleDisplay(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CommandStorageTimeout)
	defer cancel()

	embed, err := ch.deps.ScheduleBoard.GenerateBoard(ctx, constants.MsgBoardTitle)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if embed == nil {
		if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgDisplayEmpty); err != nil {
			utils.Error("Failed to send empty display response: %v", err)
		}
		return
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send schedule embed: %v", err)
	}
}

func (ch *CommandHandler) handleClear(s *discordgo.Session, m *discordgo.MessageCreate, isAdmin bool) {
	if !isAdmin {
		utils.Warn("User %s attempted to clear schedules without admin permissions", m.Author.Username)
		errors.HandleDiscordError(s, m.ChannelID, errors.NewPermissionError("INSUFFICIENT_PERMISSIONS",
			"clear requires administrator", constants.MsgInsufficientPermissions))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.CommandStorageTimeout)
	defer cancel()

	deleted, err := ch.deps.Storage.DeleteAll(ctx)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	utils.Info("User %s cleared %d stored schedules", m.Author.Username, deleted)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, fmt.Sprintf(constants.MsgClearSuccess, deleted)); err != nil {
		utils.Error("Failed to send clear response: %v", err)
	}
}

// isAdmin 사용자가 서버 관리자 권한을 가지고 있는지 확인합니다
func (ch *CommandHandler) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// DM에서는 관리자 권한 없음
	if m.GuildID == "" {
		return false
	}

	// 길드 정보 가져오기
	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild == nil {
		utils.Warn("Cannot get guild information: %v", err)
		return false
	}

	// 서버 소유자인지 확인
	if m.Author.ID == guild.OwnerID {
		utils.Debug("User %s is the guild owner - granting admin access", m.Author.Username)
		return true
	}

	// 멤버 정보 가져오기
	member := m.Member
	if member == nil {
		member, err = s.GuildMember(m.GuildID, m.Author.ID)
		if err != nil || member == nil {
			utils.Warn("Cannot get member information for %s: %v", m.Author.Username, err)
			return false
		}
	}

	// 멤버의 역할들을 확인
	for _, roleID := range member.Roles {
		role, err := s.State.Role(m.GuildID, roleID)
		if err != nil {
			utils.Warn("Cannot get role %s: %v", roleID, err)
			continue
		}

		// 관리자 권한(ADMINISTRATOR) 확인
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			utils.Debug("User %s has ADMINISTRATOR permission through role %s", m.Author.Username, role.Name)
			return true
		}
	}

	utils.Debug("User %s has no admin permissions", m.Author.Username)
	return false
}
