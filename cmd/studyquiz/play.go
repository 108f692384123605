package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studyquiz"
)

const optionLetters = "ABCDEFGHIJ"

var playQuestions int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Answer questions interactively",
	Long: `Asks questions one at a time and grades each answer. Enter the letter of
an option, or q to stop.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVarP(&playQuestions, "questions", "n", 10, "number of questions")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine, closeLog, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeLog()

	return playQuiz(engine, cmd.InOrStdin(), cmd.OutOrStdout(), playQuestions)
}

func playQuiz(engine *studyquiz.Engine, in io.Reader, out io.Writer, numQuestions int) error {
	fmt.Fprintf(out, "🎯 Starting quiz (%s mode)\n", engine.Params().Mode)
	fmt.Fprintf(out, "📝 Questions: %d\n\n", numQuestions)

	scanner := bufio.NewScanner(in)
	letters := optionLetters[:engine.Params().OptionCount()]

	for questionNum := 1; questionNum <= numQuestions; questionNum++ {
		question, err := engine.NextQuestion()
		if errors.Is(err, studyquiz.ErrGenerationExhausted) {
			fmt.Fprintln(out, "🔁 No new questions could be generated from this corpus.")
			break
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Question %d/%d:\n", questionNum, numQuestions)
		fmt.Fprintf(out, "%s\n\n", question.Text)
		for i, option := range question.Options {
			fmt.Fprintf(out, "%c) %s\n", letters[i], option)
		}
		fmt.Fprintln(out)

		var answer int
		for {
			fmt.Fprintf(out, "Your answer (%s): ", strings.Join(strings.Split(letters, ""), "/"))
			if !scanner.Scan() {
				return finishPlay(engine, out)
			}
			input := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if input == "Q" {
				return finishPlay(engine, out)
			}
			if len(input) == 1 && strings.Contains(letters, input) {
				answer = strings.Index(letters, input)
				break
			}
			fmt.Fprintf(out, "Please enter one of %s\n", letters)
		}

		verdict, err := engine.CheckOption(answer)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		if verdict.IsCorrect {
			fmt.Fprintln(out, "✅ Correct!")
		} else {
			fmt.Fprintf(out, "❌ Incorrect. The correct answer is %c) %s\n",
				letters[question.CorrectIndex()], verdict.CorrectAnswer)
		}
		if verdict.Explanation != "" {
			fmt.Fprintf(out, "💡 Explanation: %s\n", verdict.Explanation)
		}

		correct, answered := engine.History().Score()
		fmt.Fprintf(out, "\n📊 Score: %d/%d\n", correct, answered)
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 50))
		fmt.Fprintln(out)
	}

	return finishPlay(engine, out)
}

func finishPlay(engine *studyquiz.Engine, out io.Writer) error {
	correct, answered := engine.History().Score()
	fmt.Fprintln(out, "\n🎉 Quiz completed!")
	if answered == 0 {
		return nil
	}

	percentage := float64(correct) / float64(answered) * 100
	fmt.Fprintf(out, "🏆 Final score: %d/%d (%.1f%%)\n", correct, answered, percentage)
	switch {
	case percentage >= 80:
		fmt.Fprintln(out, "🌟 Excellent work!")
	case percentage >= 60:
		fmt.Fprintln(out, "👍 Good job!")
	default:
		fmt.Fprintln(out, "📚 Keep studying!")
	}
	return nil
}
