package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/session"
	"github.com/ecolink/ecolink/internal/waste"
)

const (
	PromptShowCompanies = "Show companies"
	PromptCategory      = "Pick a category"
	PromptSearch        = "Search"
	PromptClearFilters  = "Clear filters"
	PromptOpenCompany   = "Open a company"
	PromptConnect       = "Connect"
	PromptNoCategory    = "No category"
	PromptExit          = "Exit"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowCompanies, PromptCategory, PromptSearch, PromptClearFilters, PromptOpenCompany, PromptExit},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Sign up and browse matching companies interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		runSession(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()
	out := cmd.OutOrStdout()

	d, err := loadDirectory(config, logger)
	if err != nil {
		logger.Fatal("loading directory", zap.Error(err))
	}

	classifier, err := newClassifier(ctx, config.Classifier, logger)
	if err != nil {
		logger.Fatal("building classifier", zap.Error(err))
	}

	s := session.New(classifier, matching.New(d), logger)
	logger.Info("starting the session", zap.String("session_id", s.ID.String()), zap.String("version", version))

	if err := signup(ctx, out, s); err != nil {
		if errors.Is(err, errExit) || errors.Is(err, promptui.ErrInterrupt) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}

	printResult(out, s.Results())

	for {
		_, action, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleSessionAction(action, out, s); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, promptui.ErrInterrupt) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleSessionAction(action string, out io.Writer, s *session.Session) error {
	switch action {
	case PromptShowCompanies:
		printResult(out, s.Results())
		return nil
	case PromptCategory:
		return chooseCategory(out, s)
	case PromptSearch:
		text, err := (&promptui.Prompt{Label: "Search companies or waste", Default: s.Query().Search, AllowEdit: true}).Run()
		if err != nil {
			return err
		}
		s.SetSearch(text)
		printResult(out, s.Results())
		return nil
	case PromptClearFilters:
		s.SetSearch("")
		if err := s.SetCategory(""); err != nil {
			return err
		}
		printResult(out, s.Results())
		return nil
	case PromptOpenCompany:
		return openCompany(out, s)
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// signup asks for the form until it validates and the bio is classified.
func signup(ctx context.Context, out io.Writer, s *session.Session) error {
	for {
		form, err := askSignupForm()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Analyzing your bio...")

		err = <-s.SignupAsync(ctx, form)
		switch {
		case err == nil:
			profile, _ := s.Profile()
			fmt.Fprintf(out, "Welcome, %s! Your waste: %s\n\n", profile.CompanyName, strings.Join(profile.Waste.Strings(), ", "))
			return nil
		case errors.Is(err, ai.ErrValidation):
			fmt.Fprintln(out, "Please fill in all fields.")
		case errors.Is(err, ai.ErrEmptyResult):
			fmt.Fprintln(out, "We could not find any waste in your bio. Try describing what you make or throw away.")
		case errors.Is(err, ai.ErrTransport), errors.Is(err, ai.ErrParse):
			fmt.Fprintf(out, "The classifier is unavailable right now: %s\n", err)
		default:
			return err
		}

		if !confirm("Try again") {
			return errExit
		}
	}
}

func askSignupForm() (session.SignupForm, error) {
	var form session.SignupForm

	fields := []struct {
		label string
		mask  rune
		dst   *string
	}{
		{label: "Company Name", dst: &form.CompanyName},
		{label: "Email", dst: &form.Email},
		{label: "Password", mask: '*', dst: &form.Password},
		{label: "Company Bio", dst: &form.Bio},
	}

	for _, field := range fields {
		value, err := (&promptui.Prompt{Label: field.label, Mask: field.mask}).Run()
		if err != nil {
			return form, err
		}
		*field.dst = value
	}

	return form, nil
}

func chooseCategory(out io.Writer, s *session.Session) error {
	categories := waste.Categories()
	items := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		label := c.Name
		if current := s.Query().Category; current != nil && current.Key == c.Key {
			label += " (selected)"
		}
		items = append(items, label)
	}
	items = append(items, PromptNoCategory)

	idx, _, err := (&promptui.Select{Label: "Category", Items: items}).Run()
	if err != nil {
		return err
	}

	if idx == len(categories) {
		err = s.SetCategory("")
	} else {
		err = s.ToggleCategory(categories[idx].Key)
	}
	if err != nil {
		return err
	}

	printResult(out, s.Results())
	return nil
}

func openCompany(out io.Writer, s *session.Session) error {
	result := s.Results()
	if len(result.Entries) == 0 {
		fmt.Fprintln(out, "No companies match the current filters.")
		return nil
	}

	items := make([]string, 0, len(result.Entries)+1)
	for _, e := range result.Entries {
		label := e.Company.Name
		if e.BestMatch {
			label += " (best match)"
		}
		items = append(items, label)
	}
	items = append(items, PromptBack)

	idx, _, err := (&promptui.Select{Label: "Choose a company and press ENTER", Items: items}).Run()
	if err != nil {
		return err
	}
	if idx == len(result.Entries) {
		return nil
	}

	company, shared, err := s.Explain(result.Entries[idx].Company.ID)
	if err != nil {
		return err
	}
	printExplain(out, company, shared)

	_, next, err := (&promptui.Select{Label: "🤝 Connect with " + company.Name + "?", Items: []string{PromptConnect, PromptBack}}).Run()
	if err != nil || next == PromptBack {
		return err
	}

	message, err := (&promptui.Prompt{Label: "📬 Send a Message"}).Run()
	if err != nil {
		return err
	}
	review, err := (&promptui.Prompt{Label: "⭐ Leave a Review"}).Run()
	if err != nil {
		return err
	}

	if _, err := s.Connect(company.ID, message, review); err != nil {
		if errors.Is(err, ai.ErrValidation) {
			fmt.Fprintln(out, "Nothing to send: write a message or a review.")
			return nil
		}
		return err
	}

	fmt.Fprintln(out, "✅ Thank you! Your message and/or review has been submitted.")
	return nil
}

func confirm(label string) bool {
	_, err := (&promptui.Prompt{Label: label, IsConfirm: true}).Run()
	return err == nil
}
