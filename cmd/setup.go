package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Cinemate",
	Long:  `Configure API keys, an optional Google Cloud project, and the output directory for Cinemate.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🍿 Cinemate Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func createDirectories() error {
	if err := os.MkdirAll("output", 0755); err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	fmt.Println(successStyle.Render("✓ Created output directory"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureRequiredKeys(env); err != nil {
		return err
	}

	if err := configureProvider(env); err != nil {
		return err
	}

	if err := configureGCP(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureRequiredKeys(env map[string]string) error {
	var tmdbKey string

	if err := huh.NewInput().
		Title("TMDB API Key").
		Description("https://www.themoviedb.org/settings/api").
		EchoMode(huh.EchoModePassword).
		Value(&tmdbKey).
		Validate(required("TMDB API Key")).
		Run(); err != nil {
		return err
	}

	env["TMDB_API_KEY"] = strings.TrimSpace(tmdbKey)
	return nil
}

func configureProvider(env map[string]string) error {
	var provider string
	if err := huh.NewSelect[string]().
		Title("Language model provider").
		Options(
			huh.NewOption("Gemini API key", "gemini"),
			huh.NewOption("Vertex AI (Google Cloud project)", "vertex"),
			huh.NewOption("Groq", "groq"),
		).
		Value(&provider).
		Run(); err != nil {
		return err
	}

	env["LLM_PROVIDER"] = provider

	var key string
	switch provider {
	case "gemini":
		if err := huh.NewInput().
			Title("Gemini API Key").
			Description("https://aistudio.google.com/app/apikey").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(required("Gemini API Key")).
			Run(); err != nil {
			return err
		}
		env["GEMINI_API_KEY"] = strings.TrimSpace(key)
	case "groq":
		if err := huh.NewInput().
			Title("GROQ API Key").
			Description("https://console.groq.com/keys").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(required("GROQ API Key")).
			Run(); err != nil {
			return err
		}
		env["GROQ_API_KEY"] = strings.TrimSpace(key)
	}

	return nil
}

func configureGCP(env map[string]string) error {
	needed := env["LLM_PROVIDER"] == "vertex"
	if !needed {
		var setupGCP bool
		if err := huh.NewConfirm().
			Title("Setup Google Cloud?").
			Description("Optional: Secret Manager keys and gs:// result storage").
			Value(&setupGCP).
			Run(); err != nil {
			return err
		}
		if !setupGCP {
			return nil
		}
	}

	if !commandExists("gcloud") {
		fmt.Println(warnStyle.Render("gcloud CLI not found - install from https://cloud.google.com/sdk/docs/install"))
		return nil
	}

	project, err := getGCPProject()
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("GCP setup skipped: %v", err)))
		return nil
	}
	if project == "" {
		return nil
	}

	env["GOOGLE_CLOUD_PROJECT"] = project

	if err := enableGCPAPIs(project); err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("API enablement failed: %v", err)))
	}

	return nil
}

func getGCPProject() (string, error) {
	existing := getActiveProject()

	var choice string
	options := []huh.Option[string]{
		huh.NewOption("Enter project ID manually", "manual"),
	}
	if existing != "" {
		options = append([]huh.Option[string]{
			huh.NewOption(fmt.Sprintf("Use current: %s", existing), existing),
		}, options...)
	}

	if err := huh.NewSelect[string]().
		Title("Google Cloud Project").
		Options(options...).
		Value(&choice).
		Run(); err != nil {
		return "", err
	}

	if choice != "manual" {
		return choice, nil
	}

	var projectID string
	if err := huh.NewInput().
		Title("Project ID").
		Value(&projectID).
		Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(projectID), nil
}

func getActiveProject() string {
	out, err := exec.Command("gcloud", "config", "get-value", "project").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func enableGCPAPIs(project string) error {
	apis := []string{
		"aiplatform.googleapis.com",
		"secretmanager.googleapis.com",
		"storage.googleapis.com",
	}

	return runWithSpinner("Enabling APIs", func() error {
		args := append([]string{"services", "enable"}, apis...)
		args = append(args, "--project", project)
		return runSetupCmd("gcloud", args...)
	})
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"TMDB_API_KEY",
		"LLM_PROVIDER",
		"GEMINI_API_KEY",
		"GROQ_API_KEY",
		"GOOGLE_CLOUD_PROJECT",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Browse: cinemate browse trending")
	fmt.Println("  2. Ask: cinemate recommend \"a cozy mystery for a rainy night\"")
	fmt.Println("  3. Talk: cinemate chat")
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runSetupCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
