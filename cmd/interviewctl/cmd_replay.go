package main

import (
	"fmt"
	"os"

	"github.com/Nitingarg01/Major-project-sub001/internal/company"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/replay"
	"github.com/Nitingarg01/Major-project-sub001/internal/repositories"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("db", "", "SQLite file to store the replayed session in")
	replayCmd.Flags().Bool("full", false, "print the whole session and round results, not just the report")
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a scripted interview and print its final report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		full, _ := cmd.Flags().GetBool("full")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := replay.Parse(data)
		if err != nil {
			return err
		}

		builder, _, err := newBuilder()
		if err != nil {
			return err
		}
		profiles, err := company.NewProfileSource()
		if err != nil {
			return err
		}
		orch, err := orchestrator.NewDefault()
		if err != nil {
			return err
		}

		var opts []sessions.Option
		if dbPath != "" {
			repo, err := openLocalRepository(dbPath)
			if err != nil {
				return err
			}
			opts = append(opts, sessions.WithStore(repo))
		}

		manager := sessions.NewManager(orch, builder, profiles, opts...)
		out, err := replay.NewRunner(manager).Run(cmd.Context(), script)
		if err != nil {
			return err
		}

		if full {
			return printJSON(os.Stdout, out)
		}
		if out.Report == nil {
			p := orchestrator.Progress(out.Session)
			fmt.Fprintf(os.Stderr, "session %s did not finish (%d of %d rounds completed)\n",
				out.Session.ID, p.CompletedRounds, p.TotalRounds)
			return printJSON(os.Stdout, out.Results)
		}
		return printJSON(os.Stdout, out.Report)
	},
}

// openLocalRepository opens (or creates) a pure-Go SQLite file for the
// session repository.
func openLocalRepository(path string) (*repositories.SessionRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return repositories.NewSessionRepository(db), nil
}
