package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/canvas-companion-api/internal/models"
)

const contextPreamble = "You are an AI assistant helping a student with their Canvas LMS courses."

// BuildChatContext compresses the aggregated view into a bounded natural
// language block for prompt construction. At most maxCourses course names are
// listed so prompt size stays flat no matter how many courses exist.
func BuildChatContext(courses []models.Course, assignments []models.Assignment, grades []models.GradeRecord, maxCourses int) string {
	if maxCourses <= 0 {
		maxCourses = 5
	}

	var b strings.Builder
	b.WriteString(contextPreamble)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Student's Courses (%d total):\n", len(courses))

	listed := 0
	for _, course := range courses {
		if listed >= maxCourses {
			break
		}
		fmt.Fprintf(&b, "- %s (ID: %d)\n", course.DisplayName(), course.ID)
		listed++
	}

	fmt.Fprintf(&b, "\nTotal Assignments: %d\n", len(assignments))
	fmt.Fprintf(&b, "Total Courses with Grades: %d\n", len(grades))

	return b.String()
}
