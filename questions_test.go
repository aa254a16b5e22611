package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidators(t *testing.T) {
	t.Run("intInRange", func(t *testing.T) {
		for _, in := range []string{"abc", "", "0", "4", "-1", "1.5"} {
			if _, err := intInRange(in, 1, 3); err == nil {
				t.Errorf("intInRange(%q) accepted", in)
			}
		}
		if n, err := intInRange(" 2 ", 1, 3); err != nil || n != 2 {
			t.Errorf("intInRange(\" 2 \") = %d, %v", n, err)
		}
	})
	t.Run("positiveInt", func(t *testing.T) {
		for _, in := range []string{"", "0", "-5", "x"} {
			if _, err := positiveInt(in); err == nil {
				t.Errorf("positiveInt(%q) accepted", in)
			}
		}
		if n, _ := positiveInt("720"); n != 720 {
			t.Errorf("positiveInt(720) = %d", n)
		}
	})
	t.Run("optionalPositiveInt", func(t *testing.T) {
		if n, err := optionalPositiveInt("   "); err != nil || n != 0 {
			t.Errorf("blank = %d, %v", n, err)
		}
		if _, err := optionalPositiveInt("0"); err == nil {
			t.Error("0 accepted")
		}
		if n, _ := optionalPositiveInt("30"); n != 30 {
			t.Errorf("30 = %d", n)
		}
	})
	t.Run("yesNo", func(t *testing.T) {
		cases := map[string]bool{"y": true, "Y": true, " n ": false, "N": false}
		for in, want := range cases {
			got, err := yesNo(in)
			if err != nil || got != want {
				t.Errorf("yesNo(%q) = %v, %v", in, got, err)
			}
		}
		for _, in := range []string{"", "yes", "maybe"} {
			if _, err := yesNo(in); err == nil {
				t.Errorf("yesNo(%q) accepted", in)
			}
		}
	})
}

func answerAll(t *testing.T, q *questionnaire, inputs ...string) {
	t.Helper()
	for _, in := range inputs {
		if err := q.Answer(in); err != nil {
			t.Fatalf("Answer(%q): %v", in, err)
		}
	}
}

func TestQuestionnaire_InvalidInputDoesNotAdvance(t *testing.T) {
	q := newQuestionnaire(false)
	first := q.Current().prompt

	for _, in := range []string{"abc", "0", "4", ""} {
		if err := q.Answer(in); err == nil {
			t.Fatalf("Answer(%q) accepted", in)
		}
		if q.Current().prompt != first {
			t.Fatalf("advanced past format prompt on %q", in)
		}
	}
	if err := q.Answer("2"); err != nil {
		t.Fatalf("Answer(2): %v", err)
	}
	if q.Current().prompt == first {
		t.Fatal("did not advance on valid input")
	}
}

func TestQuestionnaire_FullRun(t *testing.T) {
	q := newQuestionnaire(false)
	answerAll(t, q, "3", "5", "30", "y")
	if !q.Done() {
		t.Fatalf("not done, current %q", q.Current().prompt)
	}
	opts := q.Options()
	want := ConversionOptions{
		Format:      FormatWEBM,
		ScaleFilter: "scale=1280:720:force_original_aspect_ratio=decrease",
		FPSFilter:   "fps=30",
		KeepAudio:   true,
	}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}
	if q.ClearOutput() {
		t.Error("ClearOutput without the question")
	}
}

func TestQuestionnaire_CustomResolution(t *testing.T) {
	q := newQuestionnaire(false)
	answerAll(t, q, "1", "18")
	if got := q.Current().prompt; got != "Width: " {
		t.Fatalf("after custom, prompt = %q", got)
	}
	if err := q.Answer("-3"); err == nil {
		t.Fatal("negative width accepted")
	}
	answerAll(t, q, "1000", "500", "", "n")
	opts := q.Options()
	if opts.ScaleFilter != "scale=1000:500:force_original_aspect_ratio=decrease" {
		t.Errorf("ScaleFilter = %q", opts.ScaleFilter)
	}
	if opts.FPSFilter != "" || opts.KeepAudio {
		t.Errorf("unexpected opts %+v", opts)
	}
}

func TestQuestionnaire_KeepOriginalSkipsCustom(t *testing.T) {
	q := newQuestionnaire(false)
	answerAll(t, q, "1", "17")
	if got := q.Current().prompt; !strings.HasPrefix(got, "Desired FPS") {
		t.Fatalf("prompt = %q, want fps", got)
	}
	answerAll(t, q, "", "n")
	if q.Options().ScaleFilter != "" {
		t.Errorf("ScaleFilter = %q, want empty", q.Options().ScaleFilter)
	}
}

func TestQuestionnaire_ClearQuestion(t *testing.T) {
	q := newQuestionnaire(true)
	answerAll(t, q, "1", "17", "", "y")
	if q.Done() {
		t.Fatal("clear question was not asked")
	}
	if err := q.Answer("maybe"); err == nil {
		t.Fatal("clear accepted maybe")
	}
	answerAll(t, q, "y")
	if !q.Done() || !q.ClearOutput() {
		t.Errorf("done=%v clear=%v", q.Done(), q.ClearOutput())
	}
}

func TestQuestionnaire_Back(t *testing.T) {
	q := newQuestionnaire(false)
	if q.Back() {
		t.Fatal("Back at first question")
	}
	answerAll(t, q, "1", "18", "640")
	if !q.Back() {
		t.Fatal("Back failed")
	}
	if got := q.Current().prompt; got != "Width: " {
		t.Fatalf("after back, prompt = %q", got)
	}
	q.Back()
	answerAll(t, q, "7")
	if got := q.Current().prompt; !strings.HasPrefix(got, "Desired FPS") {
		t.Fatalf("prompt = %q, want fps", got)
	}
	answerAll(t, q, "", "n")
	if got := q.Options().ScaleFilter; got != "scale=960:540:force_original_aspect_ratio=decrease" {
		t.Errorf("ScaleFilter = %q", got)
	}
}

func TestQuestionnaire_AnswerWhenDone(t *testing.T) {
	q := newQuestionnaire(false)
	answerAll(t, q, "1", "17", "", "n")
	if q.Current() != nil {
		t.Fatal("Current() not nil when done")
	}
	if err := q.Answer("1"); err == nil {
		t.Fatal("Answer after done accepted")
	}
}

func TestAskLines(t *testing.T) {
	var out bytes.Buffer
	q := newQuestionnaire(false)
	in := strings.NewReader("abc\n2\n19\n8\n\ny\n")

	if err := askLines(in, newTerminal(&out, 50), q); err != nil {
		t.Fatalf("askLines: %v", err)
	}
	text := stripANSI(out.String())
	if n := strings.Count(text, "Invalid input"); n != 2 {
		t.Errorf("Invalid input shown %d times, want 2\n%s", n, text)
	}
	for _, want := range []string{"1) OGV (Theora/Vorbis)", "18) Custom", "Keep audio? (y/n): "} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	opts := q.Options()
	if opts.Format != FormatMP4 || !opts.KeepAudio ||
		opts.ScaleFilter != "scale=854:480:force_original_aspect_ratio=decrease" {
		t.Errorf("opts = %+v", opts)
	}
}

func TestAskLines_EOF(t *testing.T) {
	q := newQuestionnaire(false)
	err := askLines(strings.NewReader("1\n"), newTerminal(io.Discard, 50), q)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
	}
}
