package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/questions"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("mongo-uri", os.Getenv("MONGO_URI"), "mongo connection string")
	seedCmd.Flags().String("db", "interview", "database holding the questions collection")
	seedCmd.Flags().String("collection", "questions", "questions collection")
}

var seedCmd = &cobra.Command{
	Use:   "seed-questions",
	Short: "Upsert the embedded question bank into mongo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, _ := cmd.Flags().GetString("mongo-uri")
		dbName, _ := cmd.Flags().GetString("db")
		collection, _ := cmd.Flags().GetString("collection")

		_, bank, err := newBuilder()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		client, err := questions.NewMongoClient(ctx, uri, dbName)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		provider, err := questions.NewMongoProvider(ctx, client, collection, utils.GetLogger())
		if err != nil {
			return err
		}

		all := bank.All()
		types := make([]string, 0, len(all))
		for rt := range all {
			types = append(types, string(rt))
		}
		sort.Strings(types)

		total := 0
		for _, rt := range types {
			n, err := provider.Seed(ctx, models.RoundType(rt), all[models.RoundType(rt)])
			total += n
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %d\n", rt, n)
		}
		fmt.Printf("seeded %d questions into %s.%s\n", total, dbName, collection)
		return nil
	},
}
