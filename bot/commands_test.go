package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/acptimes"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/storage"
)

func TestNewCommandHandler(t *testing.T) {
	deps := NewCommandDependencies(storage.NewInMemoryStorage(), acptimes.NewCalculator(), nil)

	ch := NewCommandHandler(deps)
	if ch == nil {
		t.Fatal("NewCommandHandler가 nil을 반환했습니다")
	}

	if ch.deps != deps {
		t.Error("CommandHandler 의존성이 올바르게 설정되지 않았습니다")
	}

	if deps.ScheduleBoard == nil {
		t.Error("ScheduleBoard가 초기화되지 않았습니다")
	}
}

func TestParseMessage(t *testing.T) {
	ch := &CommandHandler{}

	tests := []struct {
		content        string
		expectedCmd    string
		expectedParams []string
	}{
		{
			content:        "!help",
			expectedCmd:    "help",
			expectedParams: []string{},
		},
		{
			content:        "!calc 200 2018-11-17T06:00+00:00 0 60 200",
			expectedCmd:    "calc",
			expectedParams: []string{"200", "2018-11-17T06:00+00:00", "0", "60", "200"},
		},
		{
			content:        "  !SUBMIT   300 2018-11-17T06:00   0  ",
			expectedCmd:    "submit",
			expectedParams: []string{"300", "2018-11-17T06:00", "0"},
		},
		{
			content:        "hello world",
			expectedCmd:    "",
			expectedParams: nil,
		},
		{
			content:        "!",
			expectedCmd:    "",
			expectedParams: nil,
		},
		{
			content:        "",
			expectedCmd:    "",
			expectedParams: nil,
		},
	}

	for _, test := range tests {
		m := &discordgo.MessageCreate{
			Message: &discordgo.Message{
				Content: test.content,
				GuildID: "guild123", // Non-empty for non-DM
			},
		}

		command, params, isDM := ch.parseMessage(m)

		if command != test.expectedCmd {
			t.Errorf("parseMessage(%q) 명령어 = %q, 예상값 %q",
				test.content, command, test.expectedCmd)
		}

		if len(params) != len(test.expectedParams) {
			t.Errorf("parseMessage(%q) 매개변수 길이 = %d, 예상값 %d",
				test.content, len(params), len(test.expectedParams))
			continue
		}

		for i, param := range params {
			if param != test.expectedParams[i] {
				t.Errorf("parseMessage(%q) params[%d] = %q, 예상값 %q",
					test.content, i, param, test.expectedParams[i])
			}
		}

		if isDM {
			t.Errorf("parseMessage(%q) should not detect DM in a guild", test.content)
		}
	}

	// DM 감지
	dmMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content: "!help",
			GuildID: "",
		},
	}

	_, _, isDM := ch.parseMessage(dmMessage)
	if !isDM {
		t.Error("parseMessage should detect DM when GuildID is empty")
	}
}

func TestShouldIgnoreMessage(t *testing.T) {
	ch := &CommandHandler{}

	session := &discordgo.Session{
		State: discordgo.NewState(),
	}
	session.State.User = &discordgo.User{ID: "bot123"}

	tests := []struct {
		name   string
		author *discordgo.User
		ignore bool
	}{
		{"own message", &discordgo.User{ID: "bot123"}, true},
		{"other bot", &discordgo.User{ID: "bot456", Bot: true}, true},
		{"missing author", nil, true},
		{"user message", &discordgo.User{ID: "user123"}, false},
	}

	for _, test := range tests {
		m := &discordgo.MessageCreate{
			Message: &discordgo.Message{Author: test.author, GuildID: "guild123"},
		}
		if got := ch.shouldIgnoreMessage(session, m); got != test.ignore {
			t.Errorf("%s: shouldIgnoreMessage = %v, 예상값 %v", test.name, got, test.ignore)
		}
	}
}

func TestIsKnownCommand(t *testing.T) {
	for _, command := range []string{"help", "도움말", "calc", "계산", "submit", "제출", "display", "조회", "clear", "삭제", "ping"} {
		if !isKnownCommand(command) {
			t.Errorf("%q should be a known command", command)
		}
	}
	for _, command := range []string{"register", "scoreboard", "", "calcs"} {
		if isKnownCommand(command) {
			t.Errorf("%q should not be a known command", command)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	ch := &CommandHandler{}

	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.User = &discordgo.User{ID: "bot123"}
	err := session.State.GuildAdd(&discordgo.Guild{
		ID:      "guild123",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "admin-role", Name: "운영진", Permissions: discordgo.PermissionAdministrator},
			{ID: "member-role", Name: "멤버", Permissions: discordgo.PermissionSendMessages},
		},
	})
	if err != nil {
		t.Fatalf("GuildAdd failed: %v", err)
	}

	message := func(authorID, guildID string, roles ...string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{
			Message: &discordgo.Message{
				Author:  &discordgo.User{ID: authorID, Username: authorID},
				GuildID: guildID,
				Member:  &discordgo.Member{Roles: roles},
			},
		}
	}

	tests := []struct {
		name  string
		m     *discordgo.MessageCreate
		admin bool
	}{
		{"DM", message("owner", ""), false},
		{"guild owner", message("owner", "guild123"), true},
		{"administrator role", message("user1", "guild123", "member-role", "admin-role"), true},
		{"regular member", message("user2", "guild123", "member-role"), false},
		{"unknown role", message("user3", "guild123", "ghost-role"), false},
		{"unknown guild", message("user4", "other-guild"), false},
	}

	for _, test := range tests {
		if got := ch.isAdmin(session, test.m); got != test.admin {
			t.Errorf("%s: isAdmin = %v, 예상값 %v", test.name, got, test.admin)
		}
	}
}

func TestBuildSchedule(t *testing.T) {
	ch := NewCommandHandler(NewCommandDependencies(storage.NewInMemoryStorage(), acptimes.NewCalculator(), nil))

	submission, err := ch.buildSchedule([]string{"200", "2018-11-17T06:00+00:00", "0:Start", "60", "200km:Finish"}, constants.MsgCalcUsage)
	if err != nil {
		t.Fatalf("buildSchedule failed: %v", err)
	}

	if len(submission.Controls) != 3 {
		t.Fatalf("expected 3 controls, got %d", len(submission.Controls))
	}
	if submission.Controls[1].Open != "2018-11-17T07:46:00+00:00" || submission.Controls[1].Close != "2018-11-17T10:00:00+00:00" {
		t.Errorf("unexpected 60km times: %+v", submission.Controls[1])
	}
	if submission.Controls[2].Location != "Finish" {
		t.Errorf("expected Finish location, got %q", submission.Controls[2].Location)
	}

	_, err = ch.buildSchedule([]string{"250", "2018-11-17T06:00+00:00", "0"}, constants.MsgCalcUsage)
	if !errors.HasCode(err, acptimes.CodeUnknownBrevet) {
		t.Errorf("expected unknown brevet error, got %v", err)
	}

	_, err = ch.buildSchedule([]string{"200", "2018-11-17T06:00+00:00", "300"}, constants.MsgCalcUsage)
	if !errors.HasCode(err, acptimes.CodeInvalidControl) {
		t.Errorf("expected invalid control error, got %v", err)
	}
}

func TestParseScheduleArgs(t *testing.T) {
	args, err := parseScheduleArgs([]string{"400", "2018-11-17T06:00-08:00", "0:Portland", "175.5km", "400:Salem_Capitol"}, constants.MsgSubmitUsage)
	if err != nil {
		t.Fatalf("parseScheduleArgs failed: %v", err)
	}

	if args.BrevetKm != 400 {
		t.Errorf("BrevetKm = %g, 예상값 400", args.BrevetKm)
	}
	if _, offset := args.Start.Zone(); offset != -8*3600 {
		t.Errorf("start offset = %d, 예상값 %d", offset, -8*3600)
	}

	expected := []models.ControlInput{
		{Km: 0, Location: "Portland"},
		{Km: 175.5},
		{Km: 400, Location: "Salem Capitol"},
	}
	if len(args.Controls) != len(expected) {
		t.Fatalf("controls = %d, 예상값 %d", len(args.Controls), len(expected))
	}
	for i, control := range args.Controls {
		if control != expected[i] {
			t.Errorf("controls[%d] = %+v, 예상값 %+v", i, control, expected[i])
		}
	}

	invalid := []struct {
		name   string
		params []string
		code   string
	}{
		{"too few params", []string{"200", "2018-11-17T06:00"}, "SCHEDULE_INVALID_PARAMS"},
		{"bad brevet", []string{"two-hundred", "2018-11-17T06:00", "0"}, "INVALID_BREVET_PARAM"},
		{"bad start", []string{"200", "tomorrow", "0"}, "INVALID_START_TIME"},
		{"bad control", []string{"200", "2018-11-17T06:00", "0", "abc:Somewhere"}, "INVALID_CONTROL_PARAM"},
		{"negative control", []string{"200", "2018-11-17T06:00", "-5"}, "INVALID_CONTROL_PARAM"},
	}

	for _, test := range invalid {
		_, err := parseScheduleArgs(test.params, constants.MsgCalcUsage)
		if !errors.HasCode(err, test.code) {
			t.Errorf("%s: expected code %s, got %v", test.name, test.code, err)
		}
		if !errors.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", test.name, err)
		}
	}

	_, err = parseScheduleArgs(nil, constants.MsgSubmitUsage)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.GetUserMessage() != constants.MsgSubmitUsage {
		t.Errorf("usage message should be returned to the user, got %v", err)
	}
}

func TestScheduleBoard(t *testing.T) {
	ctx := context.Background()
	store := storage.NewInMemoryStorage()
	board := NewScheduleBoard(store)

	embed, err := board.GenerateBoard(ctx, constants.MsgBoardTitle)
	if err != nil || embed != nil {
		t.Fatalf("empty storage should produce no embed, got %v, %v", embed, err)
	}

	start := time.Date(2018, 11, 17, 6, 0, 0, 0, time.FixedZone("", 9*3600))
	submission, err := acptimes.BuildSchedule(200, start, []models.ControlInput{{Km: 0}, {Km: 60, Location: "Gapyeong"}, {Km: 200}})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}
	if _, err := store.Insert(ctx, *submission); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	embed, err = board.GenerateBoard(ctx, constants.MsgBoardTitle)
	if err != nil {
		t.Fatalf("GenerateBoard failed: %v", err)
	}
	if embed.Title != constants.MsgBoardTitle {
		t.Errorf("Title = %q", embed.Title)
	}
	if len(embed.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(embed.Fields))
	}

	field := embed.Fields[0]
	if !strings.Contains(field.Name, "200km") || !strings.Contains(field.Name, "Sat 11/17 06:00") {
		t.Errorf("unexpected field name %q", field.Name)
	}
	if !strings.Contains(field.Value, "Sat 11/17 07:46") || !strings.Contains(field.Value, "Gapyeong") {
		t.Errorf("unexpected field value %q", field.Value)
	}
	if embed.Footer != nil {
		t.Error("footer should only appear when submissions are truncated")
	}
}

func TestFormatBoardTruncatesFields(t *testing.T) {
	submissions := make([]models.Submission, constants.MaxEmbedFields+3)
	for i := range submissions {
		submissions[i] = models.Submission{BrevetKm: 200, BeginDate: "2018-11-17T06:00:00+00:00"}
	}

	embed := formatBoard("title", submissions)
	if len(embed.Fields) != constants.MaxEmbedFields {
		t.Errorf("fields = %d, 예상값 %d", len(embed.Fields), constants.MaxEmbedFields)
	}
	if embed.Footer == nil || !strings.Contains(embed.Footer.Text, "3") {
		t.Errorf("footer should mention hidden submissions, got %+v", embed.Footer)
	}
}

func TestFormatBoardRespectsTotalLength(t *testing.T) {
	submissions := make([]models.Submission, 10)
	for i := range submissions {
		controls := make([]models.Control, 30)
		for j := range controls {
			controls[j] = models.Control{
				Km:       float64(j * 10),
				Open:     "2018-11-17T06:00:00+00:00",
				Close:    "2018-11-17T07:00:00+00:00",
				Location: "Checkpoint",
			}
		}
		submissions[i] = models.Submission{BrevetKm: 300, BeginDate: "2018-11-17T06:00:00+00:00", Controls: controls}
	}

	embed := formatBoard("title", submissions)
	if n := embedLength(embed); n > constants.MaxEmbedTotalLength {
		t.Errorf("embed length %d exceeds %d", n, constants.MaxEmbedTotalLength)
	}
	if len(embed.Fields) == 0 || len(embed.Fields) >= len(submissions) {
		t.Fatalf("fields = %d, 일부만 표시되어야 합니다", len(embed.Fields))
	}
	hidden := len(submissions) - len(embed.Fields)
	if embed.Footer == nil || !strings.Contains(embed.Footer.Text, fmt.Sprintf("%d건", hidden)) {
		t.Errorf("footer should mention %d hidden submissions, got %+v", hidden, embed.Footer)
	}

	// 마지막 한 건만 남으면 푸터 없이 모두 표시합니다
	few := formatBoard("title", submissions[:2])
	if len(few.Fields) != 2 || few.Footer != nil {
		t.Errorf("two submissions should fit without footer: fields=%d footer=%+v", len(few.Fields), few.Footer)
	}
}

func embedLength(embed *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(embed.Title) + utf8.RuneCountInString(embed.Description)
	for _, field := range embed.Fields {
		n += utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)
	}
	if embed.Footer != nil {
		n += utf8.RuneCountInString(embed.Footer.Text)
	}
	return n
}

func TestFormatControlBlockRespectsLimit(t *testing.T) {
	controls := make([]models.Control, constants.MaxControlsPerSubmission)
	for i := range controls {
		controls[i] = models.Control{
			Km:       float64(i * 10),
			Open:     "2018-11-17T06:00:00+00:00",
			Close:    "2018-11-17T07:00:00+00:00",
			Location: "Checkpoint",
		}
	}

	block := formatControlBlock(controls, constants.MaxEmbedFieldLength)
	if len(block) > constants.MaxEmbedFieldLength {
		t.Errorf("block length %d exceeds limit", len(block))
	}
	if !strings.HasPrefix(block, "```\n") || !strings.HasSuffix(block, "...\n```") {
		t.Errorf("truncated block should be fenced and end with an ellipsis: %q", block)
	}

	short := formatControlBlock(controls[:2], constants.MaxEmbedFieldLength)
	if strings.Contains(short, "...") {
		t.Errorf("short block should not be truncated: %q", short)
	}
}

func TestChunkLines(t *testing.T) {
	lines := []string{strings.Repeat("a", 6), strings.Repeat("b", 6), strings.Repeat("c", 6)}

	chunks := chunkLines(lines, 13)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, 예상값 2: %q", len(chunks), chunks)
	}
	if chunks[0] != "aaaaaa\nbbbbbb" || chunks[1] != "cccccc" {
		t.Errorf("unexpected chunks %q", chunks)
	}

	if chunkLines(nil, 10) != nil {
		t.Error("no lines should produce no chunks")
	}
}

func TestFormatCalcReply(t *testing.T) {
	start := time.Date(2018, 11, 17, 6, 0, 0, 0, time.UTC)
	inputs := make([]models.ControlInput, constants.MaxControlsPerSubmission)
	for i := range inputs {
		inputs[i] = models.ControlInput{Km: float64(i) * 4, Location: "Checkpoint_Name"}
	}
	submission, err := acptimes.BuildSchedule(200, start, inputs)
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	chunks := formatCalcReply(submission)
	if len(chunks) < 2 {
		t.Errorf("50 controls should be split across messages, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > constants.MaxDiscordMessageLength {
			t.Errorf("chunk %d length %d exceeds limit", i, len(chunk))
		}
	}
	if !strings.Contains(chunks[0], "200km") {
		t.Errorf("first chunk should carry the title: %q", chunks[0])
	}
}
