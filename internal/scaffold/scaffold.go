package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/mortardata/mortar/internal/branding"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templateFS embed.FS

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ProjectData holds all template variables available to project templates.
type ProjectData struct {
	Name        string // e.g., "my_project"
	Title       string // e.g., "My Project"
	DisplayName string // product name, e.g. "Mortar"
	CLIName     string // e.g., "mortar"
	Year        int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	// Files are slash-separated paths relative to OutputDir, in creation order.
	Files []string
}

type projectFile struct {
	template string
	dest     string
}

// NewProjectData creates a ProjectData for name.
func NewProjectData(name string) *ProjectData {
	return &ProjectData{
		Name:        name,
		Title:       titleFor(name),
		DisplayName: branding.DisplayName(),
		CLIName:     branding.CLIName(),
		Year:        time.Now().Year(),
	}
}

var titleCaser = cases.Title(language.English)

// titleFor turns a project name into a heading: separators become spaces and
// each word is capitalized.
func titleFor(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	return titleCaser.String(strings.Join(words, " "))
}

// ValidateName checks that name can be used as a project and file name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: use letters, digits, '-' and '_', starting with a letter or digit", name)
	}
	return nil
}

func projectFiles(name string) []projectFile {
	return []projectFile{
		{"README.md.tmpl", "README.md"},
		{"gitignore.tmpl", ".gitignore"},
		{"Gemfile.tmpl", "Gemfile"},
		{"pigscript.pig.tmpl", path.Join("pigscripts", name+".pig")},
		{"gitkeep.tmpl", path.Join("macros", ".gitkeep")},
		{"python_udf.py.tmpl", path.Join("udfs", "python", name+".py")},
	}
}

// GenerateProject creates <parentDir>/<data.Name> and renders the project
// templates into it. An existing non-empty directory is left untouched.
func GenerateProject(data *ProjectData, parentDir string) (*Result, error) {
	if err := ValidateName(data.Name); err != nil {
		return nil, err
	}

	outputDir := filepath.Join(parentDir, data.Name)

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("directory %s already exists and is not empty", outputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}

	for _, f := range projectFiles(data.Name) {
		content, err := render(f.template, data)
		if err != nil {
			return nil, err
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(f.dest))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, f.dest)
	}

	return result, nil
}

func render(name string, data *ProjectData) ([]byte, error) {
	tmplPath := path.Join("templates", "project", name)
	tmplBytes, err := templateFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
