package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
	Long:  `Create, list, and remove courses. Every document belongs to exactly one course.`,
}

var courseAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseAdd,
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses",
	RunE:  runCourseList,
}

var courseRemoveCmd = &cobra.Command{
	Use:   "remove [course-id]",
	Short: "Remove a course and all its materials",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseRemove,
}

// courseDescription is a flag for the add command.
var courseDescription string

func init() {
	courseAddCmd.Flags().StringVarP(&courseDescription, "description", "d", "", "Optional course description")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseRemoveCmd)
	rootCmd.AddCommand(courseCmd)
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	if courseService == nil {
		return errors.New("course service not configured")
	}

	ctx := context.Background()

	course, err := courseService.Add(ctx, args[0], courseDescription)
	if err != nil {
		return fmt.Errorf("failed to add course: %w", err)
	}

	cmd.Printf("Created course: %s\n", course.ID)
	cmd.Printf("  Name: %s\n", course.Name)
	if course.Description != "" {
		cmd.Printf("  Description: %s\n", course.Description)
	}
	return nil
}

func runCourseList(cmd *cobra.Command, _ []string) error {
	if courseService == nil {
		return errors.New("course service not configured")
	}

	ctx := context.Background()

	courses, err := courseService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	if len(courses) == 0 {
		cmd.Println("No courses yet.")
		cmd.Println("Add one with: coursemate course add \"Course Name\"")
		return nil
	}

	cmd.Println("Courses:")
	cmd.Println()
	for i := range courses {
		cmd.Printf("  %s\n", courses[i].ID)
		cmd.Printf("    Name: %s\n", courses[i].Name)
		if courses[i].Description != "" {
			cmd.Printf("    Description: %s\n", courses[i].Description)
		}
		cmd.Printf("    Created: %s\n", courses[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d courses\n", len(courses))
	return nil
}

func runCourseRemove(cmd *cobra.Command, args []string) error {
	if courseService == nil {
		return errors.New("course service not configured")
	}

	courseID := args[0]
	ctx := context.Background()

	if err := courseService.Remove(ctx, courseID); err != nil {
		return fmt.Errorf("failed to remove course: %w", err)
	}

	cmd.Printf("Removed course: %s\n", courseID)
	return nil
}
