package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/interfaces"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
)

const embedColor = 0x2E86C1

type ScheduleBoard struct {
	storage interfaces.StorageRepository
}

func NewScheduleBoard(storage interfaces.StorageRepository) *ScheduleBoard {
	return &ScheduleBoard{storage: storage}
}

// GenerateBoard 저장된 스케줄을 임베드 하나로 만듭니다. 저장된 스케줄이 없으면 nil을 반환합니다
func (board *ScheduleBoard) GenerateBoard(ctx context.Context, title string) (*discordgo.MessageEmbed, error) {
	submissions, err := board.storage.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, nil
	}

	return formatBoard(title, submissions), nil
}

// formatBoard 필드 개수와 임베드 전체 글자 수 제한 안에서 스케줄을 채우고, 남은 건수는 푸터에 적습니다
func formatBoard(title string, submissions []models.Submission) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf(constants.MsgDisplayTitle, len(submissions)),
		Color:       embedColor,
	}

	total := utf8.RuneCountInString(embed.Title) + utf8.RuneCountInString(embed.Description)
	footerReserve := utf8.RuneCountInString(fmt.Sprintf(constants.MsgDisplayMore, len(submissions)))

	for i, submission := range submissions {
		if i >= constants.MaxEmbedFields {
			break
		}
		field := &discordgo.MessageEmbedField{
			Name:  submissionHeading(i, submission),
			Value: formatControlBlock(submission.Controls, constants.MaxEmbedFieldLength),
		}
		size := utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)
		need := total + size
		if i < len(submissions)-1 {
			need += footerReserve
		}
		if need > constants.MaxEmbedTotalLength {
			break
		}
		embed.Fields = append(embed.Fields, field)
		total += size
	}

	if hidden := len(submissions) - len(embed.Fields); hidden > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf(constants.MsgDisplayMore, hidden),
		}
	}

	return embed
}

func submissionHeading(index int, submission models.Submission) string {
	start := submission.BeginDate
	if t, err := utils.ParseISO(submission.BeginDate); err == nil {
		start = utils.FormatDisplay(t)
	}
	return fmt.Sprintf("#%d %s %gkm · %s", index+1, constants.EmojiBike, submission.BrevetKm, start)
}

// formatControlBlock 컨트롤 표를 코드 블록으로 만듭니다. limit를 넘으면 뒤쪽 행을 생략합니다
func formatControlBlock(controls []models.Control, limit int) string {
	const (
		fenceOpen  = "```\n"
		fenceClose = "```"
		ellipsis   = "...\n"
	)

	var sb strings.Builder
	sb.WriteString(fenceOpen)
	for i, control := range controls {
		row := controlRow(control)
		remaining := len(controls) - i - 1
		reserve := len(fenceClose)
		if remaining > 0 {
			reserve += len(ellipsis)
		}
		if sb.Len()+len(row)+reserve > limit {
			sb.WriteString(ellipsis)
			break
		}
		sb.WriteString(row)
	}
	sb.WriteString(fenceClose)
	return sb.String()
}

func controlRow(control models.Control) string {
	row := fmt.Sprintf("%7.1fkm  %s  %s", control.Km, displayTime(control.Open), displayTime(control.Close))
	if control.Location != "" {
		row += "  " + control.Location
	}
	return row + "\n"
}

func displayTime(iso string) string {
	if t, err := utils.ParseISO(iso); err == nil {
		return utils.FormatDisplay(t)
	}
	return iso
}

// formatCalcReply !calc 결과를 메시지 길이 제한에 맞춰 나눈 메시지들로 만듭니다
func formatCalcReply(submission *models.Submission) []string {
	lines := make([]string, 0, len(submission.Controls)+1)
	lines = append(lines, fmt.Sprintf(constants.MsgCalcTitle, constants.EmojiBike,
		submission.BrevetKm, displayTime(submission.BeginDate)))

	for _, control := range submission.Controls {
		line := fmt.Sprintf(constants.MsgCalcRow, control.Km, displayTime(control.Open), displayTime(control.Close))
		if control.Location != "" {
			line += " · " + control.Location
		}
		lines = append(lines, line)
	}

	return chunkLines(lines, constants.MaxDiscordMessageLength)
}

// chunkLines 줄 단위로 limit 이하의 메시지들로 나눕니다
func chunkLines(lines []string, limit int) []string {
	var chunks []string
	var sb strings.Builder

	for _, line := range lines {
		if sb.Len() > 0 && sb.Len()+1+len(line) > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

// SendDailyDigest 저장된 스케줄 요약을 지정된 채널에 전송합니다
func (board *ScheduleBoard) SendDailyDigest(ctx context.Context, session *discordgo.Session, channelID string) error {
	embed, err := board.GenerateBoard(ctx, constants.MsgDigestTitle)
	if err != nil {
		return err
	}
	if embed == nil {
		utils.Debug("No stored schedules - skipping daily digest")
		return nil
	}

	_, err = session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		utils.Error("DISCORD API ERROR: Failed to send daily digest: %v", err)
	}
	return err
}
