package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/phrazzld/flashcards/internal/domain"
	"github.com/phrazzld/flashcards/internal/platform/logger"
	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/samber/lo"
)

// Action is an entry of the main menu.
type Action string

// Main menu entries, in display order.
const (
	ActionCreate   Action = "Create flashcard"
	ActionList     Action = "List flashcards"
	ActionPractice Action = "Practice"
	ActionStats    Action = "Stats"
	ActionReset    Action = "Reset"
	ActionExit     Action = "Exit"
)

// Actions lists the main menu.
var Actions = []Action{ActionCreate, ActionList, ActionPractice, ActionStats, ActionReset, ActionExit}

// StopChoice ends the practice loop.
const StopChoice = "Stop"

const separator = "────────────────────────"

// Console runs the interactive session of one user.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	practice practice.Service
	userID   int64
	logger   *slog.Logger
}

// NewConsole creates a Console that reads from in and writes to out on behalf
// of the user with userID.
func NewConsole(in io.Reader, out io.Writer, svc practice.Service, userID int64, logger *slog.Logger) *Console {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practice service cannot be nil for Console")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		practice: svc,
		userID:   userID,
		logger: logger.With(
			slog.String("component", "console"),
			slog.Int64("user_id", userID),
		),
	}
}

// Run shows the main menu until the user chooses Exit or the input ends.
// Failures of a single action are reported to the user and the menu is shown
// again; only unrecoverable errors are returned.
func (c *Console) Run(ctx context.Context) error {
	ctx = logger.WithLogger(ctx, c.logger)
	options := lo.Map(Actions, func(a Action, _ int) string { return string(a) })

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.choose("Select action", options)
		if err != nil {
			return c.finish(err)
		}

		action := Action(choice)
		if action == ActionExit {
			return nil
		}

		if err := c.report(c.dispatch(ctx, action)); err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, action Action) error {
	c.logger.Debug("action selected", slog.String("action", string(action)))

	switch action {
	case ActionCreate:
		return c.createFlashcard(ctx)
	case ActionList:
		return c.listFlashcards(ctx)
	case ActionPractice:
		return c.practiceLoop(ctx)
	case ActionStats:
		return c.showStatistics(ctx)
	case ActionReset:
		return c.resetProgress(ctx)
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

// finish treats the end of input like Exit.
func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		c.println("")
		return nil
	}
	return err
}

// report prints recoverable errors and returns the rest.
func (c *Console) report(err error) error {
	if err == nil {
		return nil
	}

	var persistenceErr *practice.PersistenceError
	switch {
	case errors.As(err, &persistenceErr):
		c.logger.Error("action failed",
			slog.String("operation", persistenceErr.Operation),
			slog.String("error", err.Error()))
		c.printf("Operation failed: %s. Please try again.\n", persistenceErr.Message)
		return nil
	case errors.Is(err, domain.ErrValidation):
		c.printf("Invalid input: %s\n", err)
		return nil
	default:
		return err
	}
}

func (c *Console) createFlashcard(ctx context.Context) error {
	question, err := c.ask("Question")
	if err != nil {
		return err
	}
	answer, err := c.ask("Answer")
	if err != nil {
		return err
	}

	_, err = c.practice.CreateFlashcard(ctx, question, answer)
	switch {
	case errors.Is(err, practice.ErrDuplicateQuestion):
		c.printf("The flashcard with question \"%s\" already exists!\n", question)
		return nil
	case err != nil:
		return err
	}

	c.println("Flashcard added successfully!")
	return nil
}

func (c *Console) listFlashcards(ctx context.Context) error {
	cards, err := c.practice.ListFlashcards(ctx)
	if err != nil {
		return err
	}

	c.println("Available flashcards")
	renderTable(c.out, []string{"Question", "Answer"},
		lo.Map(cards, func(card *domain.Flashcard, _ int) []string {
			return []string{card.Question, card.Answer}
		}))
	return nil
}

func (c *Console) practiceLoop(ctx context.Context) error {
	for {
		c.println("")
		c.println(separator)
		c.println("")

		status, err := c.practice.GetPracticeStatus(ctx, c.userID)
		if err != nil {
			return err
		}

		c.println("Practice overview:")
		renderTable(c.out, []string{"Question", "Status"},
			lo.Map(status.Entries, func(e domain.PracticeEntry, _ int) []string {
				return []string{e.Question(), e.State.String()}
			}))
		c.printf("Completion progress: %d%%\n", status.CompletionProgress())

		pending := status.Pending()
		if len(pending) == 0 {
			if len(status.Entries) == 0 {
				c.println("There are no flashcards to practise yet.")
			} else {
				c.println("All questions are answered correctly!")
			}
			return nil
		}

		options := append([]string{StopChoice}, lo.Map(pending, func(e domain.PracticeEntry, _ int) string {
			return e.Question()
		})...)
		choice, err := c.choose("Select a question to answer or choose `Stop` to return", options)
		if err != nil {
			return err
		}
		if choice == StopChoice {
			return nil
		}

		entry, ok := status.FindByQuestion(choice)
		if !ok {
			continue
		}
		if !entry.IsPending() {
			c.println("This question is already answered!")
			continue
		}

		if err := c.answer(ctx, entry); err != nil {
			return err
		}
	}
}

func (c *Console) answer(ctx context.Context, entry domain.PracticeEntry) error {
	submitted, err := c.ask(entry.Question())
	if err != nil {
		return err
	}

	card := entry.Flashcard
	state, err := c.practice.AcceptAnswer(ctx, &card, c.userID, submitted)
	switch {
	case errors.Is(err, practice.ErrAlreadyCorrect):
		c.println("This question is already answered!")
		return nil
	case err != nil:
		return err
	}

	switch state {
	case domain.AnswerStateCorrect:
		c.println("The answer is correct!")
	case domain.AnswerStateIncorrect:
		c.println("The answer is incorrect!")
	default:
		c.logger.Error("unexpected answer state", slog.String("state", state.String()))
		c.println("This should not have happened: unsupported answer state!")
	}
	return nil
}

func (c *Console) showStatistics(ctx context.Context) error {
	stat, err := c.practice.GetStatistics(ctx)
	if err != nil {
		return err
	}

	renderTable(c.out,
		[]string{"Total number of questions", "Answered", "Correctly answered"},
		[][]string{{
			strconv.Itoa(stat.TotalQuestions),
			strconv.Itoa(stat.AnsweredPercent()) + "%",
			strconv.Itoa(stat.AnsweredCorrectlyPercent()) + "%",
		}})
	return nil
}

func (c *Console) resetProgress(ctx context.Context) error {
	confirmed, err := c.confirm("This action will reset all progress, do you wish to continue?")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := c.practice.ResetProgress(ctx, c.userID); err != nil {
		return err
	}

	c.println("Your progress has been reset and all answers deleted!")
	return nil
}
