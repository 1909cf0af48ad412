package tui_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/tui/tuitest"
)

func noPause(time.Duration) {}

func TestPrompter_Menu(t *testing.T) {
	term := tuitest.New(80, 24).Select(2)
	p := tui.NewPrompter(term, tui.WithPause(noPause))

	out, err := p.Menu("Main", []string{"a", "b", "c", "d"})
	tuitest.AssertNoError(t, err)
	v, ok := out.Get()
	if !ok || v != 2 {
		t.Errorf("Menu() = %d, %v", v, ok)
	}
	// one full redraw before each key
	tuitest.AssertField(t, "frames", len(term.Frames()), 3)
}

func TestPrompter_MenuClosedTerminal(t *testing.T) {
	term := tuitest.New(80, 24)
	p := tui.NewPrompter(term)

	_, err := p.Menu("Main", []string{"a"})
	if !errors.Is(err, tui.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestPrompter_LineWidthFollowsTerminal(t *testing.T) {
	// width 15 leaves an editor of 5 despite the configured 40
	term := tuitest.New(15, 24).Type("abcdefgh")
	p := tui.NewPrompter(term, tui.WithInputWidth(40))

	tuitest.AssertField(t, "EditorWidth", p.EditorWidth(), 5)
	out, err := p.Line("Add", "Id:")
	tuitest.AssertNoError(t, err)
	v, _ := out.Get()
	tuitest.AssertField(t, "value", v, "abcde")
}

func TestPrompter_LineConfiguredWidth(t *testing.T) {
	term := tuitest.New(200, 24)
	p := tui.NewPrompter(term, tui.WithInputWidth(3))
	tuitest.AssertField(t, "EditorWidth", p.EditorWidth(), 3)

	tiny := tui.NewPrompter(tuitest.New(4, 24))
	tuitest.AssertField(t, "EditorWidth on tiny terminal", tiny.EditorWidth(), 1)
}

func TestPrompter_MaskedEchoesStars(t *testing.T) {
	term := tuitest.New(80, 24).Type("pw")
	p := tui.NewPrompter(term)

	out, err := p.Masked("Login", "Password:")
	tuitest.AssertNoError(t, err)
	v, _ := out.Get()
	tuitest.AssertField(t, "value", v, "pw")

	for _, f := range term.Frames() {
		if f.Contains("pw") {
			t.Fatalf("plaintext echoed:\n%s", term.Dump())
		}
	}
	if !term.Saw("**") {
		t.Error("mask not drawn")
	}
}

func TestPrompter_Confirm(t *testing.T) {
	term := tuitest.New(80, 24).Keys(tui.Char('x'), tui.Enter, tui.Char('Y'))
	p := tui.NewPrompter(term)

	yes, err := p.Confirm("Sure?")
	tuitest.AssertNoError(t, err)
	tuitest.AssertField(t, "answer", yes, true)
	tuitest.AssertField(t, "remaining", term.Remaining(), 0)
}

func TestPrompter_PageUsesScreenHeight(t *testing.T) {
	rows := make([]string, 30)
	for i := range rows {
		rows[i] = "row"
	}
	term := tuitest.New(80, 16).Keys(tui.Down, tui.Down, tui.Escape)
	p := tui.NewPrompter(term)

	tuitest.AssertNoError(t, p.Page("Roster", "ID", rows))

	// height 16 shows ten rows; two downs move the window to 3-12
	if help := term.Last().Help; !strings.Contains(help, "(3-12/30)") {
		t.Errorf("help = %q", help)
	}
	// header plus ten rows
	tuitest.AssertField(t, "body lines", len(term.Last().Body), 11)
}

func TestPrompter_FlashLongPausesTwice(t *testing.T) {
	var pauses []time.Duration
	term := tuitest.New(80, 24)
	p := tui.NewPrompter(term,
		tui.WithMessageDelay(100*time.Millisecond),
		tui.WithPause(func(d time.Duration) { pauses = append(pauses, d) }),
	)

	p.Flash(tui.ToneError, "bad")
	p.FlashLong(tui.ToneSuccess, "good")

	if len(pauses) != 2 || pauses[0] != 100*time.Millisecond || pauses[1] != 200*time.Millisecond {
		t.Errorf("pauses = %v", pauses)
	}
	if !term.Saw("bad") || !term.Saw("good") {
		t.Error("flashed messages not presented")
	}
}

func TestPrompter_ShowWaitsForAnyKey(t *testing.T) {
	term := tuitest.New(80, 24).Keys(tui.Char('q'))
	p := tui.NewPrompter(term)

	tuitest.AssertNoError(t, p.Show("Scores", []string{"Total: 240"}))
	if !term.Saw("Total: 240") {
		t.Error("info screen not shown")
	}
}
