// Command test_store is a manual integration test for the PostgreSQL store.
// It migrates the schema and walks one résumé through scoring, suggestions
// and review using the same service the API server runs.
//
// Usage:
//
//	go run cmd/tools/test_store/main.go
//
// Requires DATABASE_URL environment variable to be set. Records are left in
// place so they can be inspected afterwards; point it at a scratch database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "FAIL: %s: %v\n", step, err)
	os.Exit(1)
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.Migrate(ctx, dsn); err != nil {
		fail("Migrate", err)
	}
	database, err := db.Connect(ctx, dsn, 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	svc := pipeline.NewService(pipeline.Deps{Store: database})

	fmt.Println("=== Store Integration Test ===")
	fmt.Println()

	fmt.Println("Test 1: Saving default resume...")
	resume, err := database.SaveResume(ctx, "integration.pdf", &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Integration Test", Email: "it@example.com"},
		Summary:      "Backend engineer",
		Experience: []types.ExperienceEntry{{
			Company: "Acme",
			Title:   "Engineer",
			Bullets: []types.BulletPoint{{Text: "Built payment APIs in Go"}},
		}},
		Skills: []string{"Go", "SQL"},
	})
	if err != nil {
		fail("SaveResume", err)
	}
	def, err := database.GetDefaultResume(ctx)
	if err != nil {
		fail("GetDefaultResume", err)
	}
	if def.ID != resume.ID {
		fail("GetDefaultResume", fmt.Errorf("expected resume %d to be the default, got %d", resume.ID, def.ID))
	}
	fmt.Printf("  Saved resume %d (default)\n", resume.ID)

	fmt.Println("\nTest 2: Job description deduplication...")
	posting := fmt.Sprintf("Senior Engineer\nRequirements\n• Go\n• AWS\nPosted %d", time.Now().UnixNano())
	first, err := svc.AddJobDescription(ctx, pipeline.JobInput{Text: posting})
	if err != nil {
		fail("AddJobDescription", err)
	}
	second, err := svc.AddJobDescription(ctx, pipeline.JobInput{Text: posting})
	if err != nil {
		fail("AddJobDescription (dedup)", err)
	}
	if first.Record.ID != second.Record.ID {
		fail("AddJobDescription (dedup)", fmt.Errorf("expected one record, got %d and %d", first.Record.ID, second.Record.ID))
	}
	fmt.Printf("  Job description %d stored once (hash %s...)\n", first.Record.ID, first.Record.ContentHash[:16])

	fmt.Println("\nTest 3: Scoring and suggestions...")
	batch, err := svc.Suggest(ctx, resume.ID, first.Record.ID, 5, "")
	if err != nil {
		fail("Suggest", err)
	}
	if len(batch.Suggestions) == 0 {
		fail("Suggest", errors.New("expected at least one skill gap suggestion"))
	}
	fmt.Printf("  Session %d: ATS %.1f, %d suggestions\n", batch.SessionID, batch.ATSScore, len(batch.Suggestions))

	fmt.Println("\nTest 4: Accepting a suggestion...")
	target := batch.Suggestions[0]
	out, err := svc.Accept(ctx, target.ID)
	if err != nil {
		fail("Accept", err)
	}
	if out.Score == nil || out.Score.Breakdown.ATSScore < batch.ATSScore {
		fail("Accept", errors.New("expected the session to be re-scored without losing points"))
	}
	fmt.Printf("  Applied %q, ATS now %.1f\n", target.SuggestedText, out.Score.Breakdown.ATSScore)

	fmt.Println("\nTest 5: Second accept is refused...")
	if _, err := svc.Accept(ctx, target.ID); !errors.Is(err, types.ErrSuggestionProcessed) {
		fail("Accept (twice)", fmt.Errorf("expected ErrSuggestionProcessed, got %v", err))
	}
	fmt.Println("  Already processed suggestion rejected")

	fmt.Println("\nTest 6: Listing by status...")
	accepted, err := svc.Suggestions(ctx, batch.SessionID, types.StatusAccepted)
	if err != nil {
		fail("Suggestions", err)
	}
	if len(accepted) != 1 {
		fail("Suggestions", fmt.Errorf("expected 1 accepted suggestion, got %d", len(accepted)))
	}
	fmt.Println("  Status filter works correctly")

	fmt.Println("\n=== All Tests Passed ===")
}
