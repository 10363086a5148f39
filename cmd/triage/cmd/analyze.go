package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/symplify/triage/internal/message"
	"github.com/symplify/triage/internal/triage"
)

var (
	analyzeKind    string
	analyzeSubject string
	analyzePreview string
	analyzeSender  string
	analyzeName    string
	analyzeTitle   string
	analyzeBody    string
	analyzeSource  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a single message without loading it",
	Long: `Run the triage scorer on a single message and print the result.

With no flags on a terminal, prompts for the message interactively.

Examples:
  triage analyze --subject "STAT lab results" --sender lab@clinic.example
  triage analyze --kind notification --title "Critical lab value" --source lab
  triage analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeKind, "kind", "email", "message kind: email, notification")
	analyzeCmd.Flags().StringVar(&analyzeSubject, "subject", "", "email subject")
	analyzeCmd.Flags().StringVar(&analyzePreview, "preview", "", "email preview text")
	analyzeCmd.Flags().StringVar(&analyzeSender, "sender", "", "email sender address")
	analyzeCmd.Flags().StringVar(&analyzeName, "sender-name", "", "email sender display name")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "notification title")
	analyzeCmd.Flags().StringVar(&analyzeBody, "message", "", "notification message text")
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "", "notification source type")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	interactive := !cmd.Flags().Changed("subject") &&
		!cmd.Flags().Changed("title") &&
		isatty.IsTerminal(os.Stdin.Fd())

	if interactive {
		if err := promptAnalyze(); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	switch analyzeKind {
	case "email":
		e := message.Email{
			ID:        "adhoc",
			Subject:   analyzeSubject,
			Preview:   analyzePreview,
			Timestamp: time.Now(),
			Sender: message.Sender{
				Address: analyzeSender,
				Name:    analyzeName,
			},
		}
		return enc.Encode(triage.AnalyzeEmail(e))

	case "notification":
		n := message.Notification{
			ID:        "adhoc",
			Title:     analyzeTitle,
			Message:   analyzeBody,
			Timestamp: time.Now(),
			Source: message.Source{
				Type: message.SourceType(analyzeSource),
				Name: analyzeSource,
			},
		}
		return enc.Encode(triage.AnalyzeNotification(n, time.Now()))

	default:
		return fmt.Errorf("unknown kind %q (one of: email, notification)", analyzeKind)
	}
}

// promptAnalyze collects the message fields interactively.
func promptAnalyze() error {
	kindForm := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Message kind").
			Options(
				huh.NewOption("Email", "email"),
				huh.NewOption("Notification", "notification"),
			).
			Value(&analyzeKind),
	))
	if err := kindForm.Run(); err != nil {
		return err
	}

	if analyzeKind == "email" {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Subject").Value(&analyzeSubject),
			huh.NewText().Title("Preview").Value(&analyzePreview),
			huh.NewInput().Title("Sender address").Value(&analyzeSender),
			huh.NewInput().Title("Sender name").Value(&analyzeName),
		)).Run()
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&analyzeTitle),
		huh.NewText().Title("Message").Value(&analyzeBody),
		huh.NewSelect[string]().
			Title("Source type").
			Options(
				huh.NewOption("Lab", "lab"),
				huh.NewOption("Pharmacy", "pharmacy"),
				huh.NewOption("Patient", "patient"),
				huh.NewOption("Doctor", "doctor"),
				huh.NewOption("Nurse", "nurse"),
				huh.NewOption("Admin", "admin"),
				huh.NewOption("System", "system"),
			).
			Value(&analyzeSource),
	)).Run()
}
