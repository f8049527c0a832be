package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
)

var takeCmd = &cobra.Command{
	Use:   "take <assessment-id>",
	Short: "Take an assessment in plain text mode, one answer per line",
	Long: `Take an assessment without the full-screen UI. Questions are printed one
at a time and each input line answers the current question. The clock runs
in the background; when it reaches zero the attempt is submitted with the
answers given so far. End of input submits early.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		a, ok := catalog.Find(rt.catalog.list, args[0])
		if !ok {
			ids := make([]string, 0, len(rt.catalog.list))
			for _, a := range rt.catalog.list {
				ids = append(ids, a.ID)
			}
			return fmt.Errorf("unknown assessment %q (available: %s)", args[0], strings.Join(ids, ", "))
		}

		e := rt.newEngine()
		defer e.Close()
		res, err := takeAttempt(cmd, e, a, time.Second)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

// takeAttempt runs one attempt against stdin and returns its result.
func takeAttempt(cmd *cobra.Command, e *assessment.Engine, a catalog.Assessment, tick time.Duration) (*assessment.Result, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !e.Start(a) {
		return nil, fmt.Errorf("assessment %q cannot be started", a.ID)
	}
	fmt.Fprintf(out, "%s: %d questions, %s on the clock.\n\n",
		a.Name, a.QuestionCount(), assessment.FormatClock(int(a.TimeLimit/time.Second)))

	timerDone := make(chan struct{})
	go func() {
		defer close(timerDone)
		assessment.RunTimer(ctx, e, tick)
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-timerDone:
				return
			}
		}
	}()

	stopped := e.TimerStopped()
loop:
	for {
		v := e.Snapshot()
		q, ok := v.CurrentQuestion()
		if !ok {
			break
		}
		printQuestion(out, v, q)

		select {
		case <-stopped:
			fmt.Fprintln(out, "\nTime is up.")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			e.Answer(q.ID, parseTextAnswer(q, line))
			if v.CurrentIndex == a.QuestionCount()-1 {
				break loop
			}
			e.Next()
		}
	}

	// No-op when the clock already submitted.
	e.Submit(ctx)
	<-timerDone

	res := e.Result()
	if res == nil {
		return nil, fmt.Errorf("attempt was not scored")
	}
	return res, nil
}

func printQuestion(out io.Writer, v assessment.View, q catalog.Question) {
	fmt.Fprintf(out, "[%s  %s] %s\n", v.Progress(), v.Clock(), q.Prompt)
	switch body := q.Body.(type) {
	case catalog.MultipleChoice:
		for i, opt := range body.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}
		if body.MultiSelect() {
			fmt.Fprintln(out, "  (select all that apply, e.g. 1,3)")
		}
	case catalog.TrueFalse:
		fmt.Fprintln(out, "  (true/false)")
	case catalog.Coding:
		if body.Starter != "" {
			fmt.Fprintf(out, "  starter: %s\n", body.Starter)
		}
	case catalog.Scenario:
		if body.Context != "" {
			fmt.Fprintf(out, "  %s\n", body.Context)
		}
	}
	fmt.Fprint(out, "> ")
}

// parseTextAnswer turns an input line into the stored answer format for q.
// Choice numbers are 1-based; unknown tokens are kept as typed.
func parseTextAnswer(q catalog.Question, line string) string {
	line = strings.TrimSpace(line)
	switch body := q.Body.(type) {
	case catalog.MultipleChoice:
		var chosen []string
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
			if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= len(body.Options) {
				chosen = append(chosen, body.Options[n-1])
				continue
			}
			chosen = append(chosen, tok)
		}
		return catalog.JoinChoices(chosen)
	case catalog.TrueFalse:
		switch strings.ToLower(line) {
		case "t", "true", "y", "yes":
			return "true"
		case "f", "false", "n", "no":
			return "false"
		}
		return strings.ToLower(line)
	case catalog.Coding:
		if line == "" {
			return body.Starter
		}
	}
	return line
}

func printResult(out io.Writer, r *assessment.Result) {
	verdict := "NOT PASSED"
	if r.Passed {
		verdict = "PASSED"
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %d%% %s (passing score %d%%)\n", r.AssessmentName, r.Score, verdict, r.PassingScore)
	fmt.Fprintf(out, "Correct: %d/%d   Time: %s   Level: %s\n",
		r.CorrectAnswers, r.TotalQuestions,
		assessment.FormatClock(int(r.Elapsed/time.Second)),
		r.Proficiency.DisplayName())
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(out, "  • %s\n", rec)
		}
	}
}
