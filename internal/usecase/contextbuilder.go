package usecase

import (
	"context"
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
)

// ProjectSource is the read-only portfolio data port. Implementations must
// not block indefinitely; failures are absorbed here, never propagated.
type ProjectSource interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

const (
	contextUnavailable = "Portfolio information is currently unavailable."
	blockDivider       = "----------------------------------------"
)

// BuildContext renders the grounding context for the model: every project,
// or the hinted project first followed by the rest. An unmatched hint falls
// back to the full render and a data-source failure yields a fixed fallback
// string, so this stage can never fail the pipeline.
func BuildContext(ctx context.Context, source ProjectSource, selectedProject string) string {
	projects, err := source.ListProjects(ctx)
	if err != nil {
		return contextUnavailable
	}
	if len(projects) == 0 {
		return contextUnavailable
	}

	hint := strings.TrimSpace(selectedProject)
	if hint == "" {
		return renderAllProjects(projects)
	}

	selected := -1
	for i, p := range projects {
		if p.Title == hint {
			selected = i
			break
		}
	}
	if selected < 0 {
		return renderAllProjects(projects)
	}

	var b strings.Builder
	b.WriteString("Selected project:\n")
	writeProjectBlock(&b, projects[selected])
	if len(projects) > 1 {
		b.WriteString("\nOther projects:\n")
		first := true
		for i, p := range projects {
			if i == selected {
				continue
			}
			if !first {
				b.WriteString(blockDivider + "\n")
			}
			first = false
			writeProjectBlock(&b, p)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderAllProjects(projects []domain.Project) string {
	var b strings.Builder
	b.WriteString("Projects:\n")
	for i, p := range projects {
		if i > 0 {
			b.WriteString(blockDivider + "\n")
		}
		writeProjectBlock(&b, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeProjectBlock(b *strings.Builder, p domain.Project) {
	fmt.Fprintf(b, "Title: %s\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(b, "Description: %s\n", p.Description)
	}
	if len(p.Technologies) > 0 {
		fmt.Fprintf(b, "Tech stack: %s\n", strings.Join(p.Technologies, ", "))
	}
	if len(p.Contributions) > 0 {
		b.WriteString("Key contributions:\n")
		for _, c := range p.Contributions {
			fmt.Fprintf(b, "- %s\n", c)
		}
	}
	if p.RepositoryURL != "" {
		fmt.Fprintf(b, "Repository: %s\n", p.RepositoryURL)
	}
}
