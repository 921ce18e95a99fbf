package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/model"
)

var (
	listStatus string
	listSearch string

	jobTitle   string
	jobCompany string
	jobLink    string
	jobStatus  string
	jobDate    string
	jobNotes   string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List tracked applications",
	Long:  "Fetches the job list from the server, filtered by status and free-text search, and prints a table.",
	RunE:  runJobsList,
}

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an application",
	RunE:  runJobsAdd,
}

var jobsSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Update fields of an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsSet,
}

var jobsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsRm,
}

func init() {
	jobsCmd.Flags().StringVar(&listStatus, "status", model.FilterAll, "filter by status (all, applied, interview, offer, rejected, saved)")
	jobsCmd.Flags().StringVar(&listSearch, "search", "", "free-text match against title/company")

	for _, c := range []*cobra.Command{jobsAddCmd, jobsSetCmd} {
		c.Flags().StringVar(&jobTitle, "title", "", "job title")
		c.Flags().StringVar(&jobCompany, "company", "", "company name")
		c.Flags().StringVar(&jobLink, "link", "", "posting URL")
		c.Flags().StringVar(&jobStatus, "job-status", "", "pipeline status")
		c.Flags().StringVar(&jobDate, "date", "", "applied date (YYYY-MM-DD)")
		c.Flags().StringVar(&jobNotes, "notes", "", "free-form notes")
	}

	jobsCmd.AddCommand(jobsAddCmd, jobsSetCmd, jobsRmCmd)
	rootCmd.AddCommand(jobsCmd)
}

// expireHint turns a 401 into an actionable message and clears the dead
// session, matching the TUI's forced-logout behavior.
func expireHint(env *appEnv, err error) error {
	if model.IsUnauthorized(err) {
		if cerr := env.store.Clear(); cerr != nil {
			env.logger.Error("failed to clear session", "error", cerr)
		}
		return fmt.Errorf("session expired, run `jobdeck login` again")
	}
	return err
}

func runJobsList(cmd *cobra.Command, args []string) error {
	if listStatus != model.FilterAll && !model.ValidStatus(listStatus) {
		return fmt.Errorf("unknown status %q", listStatus)
	}

	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	jobs, err := env.client.ListJobs(cmd.Context(), listStatus, listSearch)
	if err != nil {
		return expireHint(env, err)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs. Add your first application.")
		return nil
	}

	fmt.Printf("%-26s %-28s %-20s %-11s %s\n", "ID", "Title", "Company", "Status", "Applied")
	fmt.Println(strings.Repeat("─", 96))
	for _, j := range jobs {
		fmt.Printf("%-26s %-28s %-20s %-11s %s\n", j.ID, truncate(j.Title, 28), truncate(j.Company, 20), j.Status, j.AppliedDay())
	}
	fmt.Printf("\nTotal: %d\n", len(jobs))
	return nil
}

func runJobsAdd(cmd *cobra.Command, args []string) error {
	draft, err := draftFromFlags(cmd, model.EmptyDraft())
	if err != nil {
		return err
	}
	if !draft.Complete() {
		return fmt.Errorf("--title and --company are required")
	}

	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	job, err := env.client.CreateJob(cmd.Context(), draft)
	if err != nil {
		return expireHint(env, err)
	}
	fmt.Printf("Added %s @ %s (%s)\n", job.Title, job.Company, job.ID)
	return nil
}

func runJobsSet(cmd *cobra.Command, args []string) error {
	id := args[0]

	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	// The update endpoint takes a full payload, so start from the record's
	// current fields and overlay only the flags that were set.
	jobs, err := env.client.ListJobs(cmd.Context(), model.FilterAll, "")
	if err != nil {
		return expireHint(env, err)
	}
	var current *model.Job
	for i := range jobs {
		if jobs[i].ID == id {
			current = &jobs[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no job with id %s", id)
	}

	draft, err := draftFromFlags(cmd, model.DraftOf(*current))
	if err != nil {
		return err
	}

	job, err := env.client.UpdateJob(cmd.Context(), id, draft)
	if err != nil {
		return expireHint(env, err)
	}
	fmt.Printf("Updated %s @ %s (%s)\n", job.Title, job.Company, job.ID)
	return nil
}

func runJobsRm(cmd *cobra.Command, args []string) error {
	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.client.DeleteJob(cmd.Context(), args[0]); err != nil {
		return expireHint(env, err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

// draftFromFlags overlays changed flags onto base.
func draftFromFlags(cmd *cobra.Command, base model.Draft) (model.Draft, error) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		base.Title = jobTitle
	}
	if flags.Changed("company") {
		base.Company = jobCompany
	}
	if flags.Changed("link") {
		base.Link = jobLink
	}
	if flags.Changed("job-status") {
		if !model.ValidStatus(jobStatus) {
			return base, fmt.Errorf("unknown status %q", jobStatus)
		}
		base.Status = model.Status(jobStatus)
	}
	if flags.Changed("date") {
		base.AppliedDate = jobDate
	}
	if flags.Changed("notes") {
		base.Notes = jobNotes
	}
	return base, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
