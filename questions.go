package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// answers accumulates prompt results before they become ConversionOptions.
type answers struct {
	format       OutputFormat
	resolution   int
	customWidth  int
	customHeight int
	fps          int
	keepAudio    bool
	clearOutput  bool
}

func (a answers) options() ConversionOptions {
	scale := presetScaleFilter(a.resolution)
	if a.resolution == resolutionCustom {
		scale = scaleFilter(a.customWidth, a.customHeight)
	}
	return ConversionOptions{
		Format:      a.format,
		ScaleFilter: scale,
		FPSFilter:   fpsFilter(a.fps),
		KeepAudio:   a.keepAudio,
	}
}

type question struct {
	title  string
	menu   []string
	prompt string
	// when reports whether the question applies given earlier answers.
	when  func(*answers) bool
	apply func(a *answers, input string) error
}

func intInRange(input string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("enter a number from %d to %d", min, max)
	}
	return n, nil
}

func positiveInt(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return 0, errors.New("enter a positive whole number")
	}
	return n, nil
}

// optionalPositiveInt accepts blank input as 0.
func optionalPositiveInt(input string) (int, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}
	n, err := positiveInt(input)
	if err != nil {
		return 0, errors.New("enter a positive whole number or leave empty")
	}
	return n, nil
}

func yesNo(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, errors.New("answer y or n")
}

func formatMenu() []string {
	lines := make([]string, 0, len(formats))
	for f := FormatOGV; f <= FormatWEBM; f++ {
		s := formats[f]
		lines = append(lines, fmt.Sprintf("%d) %s (%s)", f, s.title, s.desc))
	}
	return lines
}

func resolutionMenu() []string {
	lines := make([]string, len(resolutions))
	for i, r := range resolutions {
		lines[i] = fmt.Sprintf("%d) %s", i+1, r.label)
	}
	return lines
}

func isCustomResolution(a *answers) bool { return a.resolution == resolutionCustom }

// newQuestions returns the prompts in the order they are asked. The clear
// question is only included when the output folder already holds entries.
func newQuestions(outputHasEntries bool) []question {
	qs := []question{
		{
			title:  "Available output formats",
			menu:   formatMenu(),
			prompt: "Select a format (1-3): ",
			apply: func(a *answers, in string) error {
				n, err := intInRange(in, 1, len(formats))
				a.format = OutputFormat(n)
				return err
			},
		},
		{
			title:  "Output resolution",
			menu:   resolutionMenu(),
			prompt: fmt.Sprintf("Select an option (1-%d): ", len(resolutions)),
			apply: func(a *answers, in string) error {
				n, err := intInRange(in, 1, len(resolutions))
				a.resolution = n
				return err
			},
		},
		{
			title:  "Custom resolution",
			prompt: "Width: ",
			when:   isCustomResolution,
			apply: func(a *answers, in string) error {
				n, err := positiveInt(in)
				a.customWidth = n
				return err
			},
		},
		{
			title:  "Custom resolution",
			prompt: "Height: ",
			when:   isCustomResolution,
			apply: func(a *answers, in string) error {
				n, err := positiveInt(in)
				a.customHeight = n
				return err
			},
		},
		{
			title:  "Frame rate",
			prompt: "Desired FPS (e.g., 30, 60, or leave empty to keep): ",
			apply: func(a *answers, in string) error {
				n, err := optionalPositiveInt(in)
				a.fps = n
				return err
			},
		},
		{
			title:  "Audio",
			prompt: "Keep audio? (y/n): ",
			apply: func(a *answers, in string) error {
				v, err := yesNo(in)
				a.keepAudio = v
				return err
			},
		},
	}
	if outputHasEntries {
		qs = append(qs, question{
			title:  "Output folder",
			prompt: "The output folder is not empty. Clear it first? (y/n): ",
			apply: func(a *answers, in string) error {
				v, err := yesNo(in)
				a.clearOutput = v
				return err
			},
		})
	}
	return qs
}

// questionnaire walks the questions, advancing only on valid input.
type questionnaire struct {
	questions []question
	answers   answers
	idx       int
	// history holds the indexes of answered questions for Back.
	history []int
}

func newQuestionnaire(outputHasEntries bool) *questionnaire {
	return &questionnaire{questions: newQuestions(outputHasEntries)}
}

func (q *questionnaire) Done() bool { return q.idx >= len(q.questions) }

// Current returns the question awaiting an answer, or nil when done.
func (q *questionnaire) Current() *question {
	if q.Done() {
		return nil
	}
	return &q.questions[q.idx]
}

// Answer validates input against the current question. On error the
// questionnaire stays where it is and earlier answers are left untouched.
func (q *questionnaire) Answer(input string) error {
	cur := q.Current()
	if cur == nil {
		return errors.New("all questions answered")
	}
	next := q.answers
	if err := cur.apply(&next, input); err != nil {
		return err
	}
	q.answers = next
	q.history = append(q.history, q.idx)
	q.idx++
	q.skip()
	return nil
}

// Back returns to the previously answered question. It reports false at
// the first question.
func (q *questionnaire) Back() bool {
	if len(q.history) == 0 {
		return false
	}
	q.idx = q.history[len(q.history)-1]
	q.history = q.history[:len(q.history)-1]
	return true
}

func (q *questionnaire) skip() {
	for !q.Done() {
		cur := &q.questions[q.idx]
		if cur.when == nil || cur.when(&q.answers) {
			return
		}
		q.idx++
	}
}

func (q *questionnaire) Options() ConversionOptions { return q.answers.options() }

func (q *questionnaire) ClearOutput() bool { return q.answers.clearOutput }

// askLines runs q over line-oriented input, re-asking after every invalid
// answer. Running out of input before the last question is an error.
func askLines(in io.Reader, term *terminal, q *questionnaire) error {
	sc := bufio.NewScanner(in)
	shownTitle := ""
	for !q.Done() {
		cur := q.Current()
		if cur.title != shownTitle {
			term.Println()
			term.Title(cur.title)
			for _, line := range cur.menu {
				term.Println(term.styles.menu.Render(line))
			}
			shownTitle = cur.title
		}
		term.Printf("%s", cur.prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			term.Println()
			return io.ErrUnexpectedEOF
		}
		if err := q.Answer(sc.Text()); err != nil {
			term.Error("Invalid input: " + err.Error())
		}
	}
	return nil
}
