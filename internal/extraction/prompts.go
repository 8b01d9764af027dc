package extraction

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

//go:embed prompts/*.twig
var promptFS embed.FS

// Prompts renders the embedded twig templates. Templates are keyed by file
// name without the .twig suffix.
type Prompts struct {
	env       *stick.Env
	templates map[string]string
}

// LoadPrompts parses every *.twig file under prompts/.
func LoadPrompts() (*Prompts, error) {
	p := &Prompts{
		env:       stick.New(nil),
		templates: make(map[string]string),
	}
	err := fs.WalkDir(promptFS, "prompts", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".twig") {
			return nil
		}
		content, readErr := fs.ReadFile(promptFS, path)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		tag := strings.TrimSuffix(filepath.Base(path), ".twig")
		p.templates[tag] = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Render executes the template for the given tag.
func (p *Prompts) Render(tag string, vars map[string]stick.Value) (string, error) {
	tpl, ok := p.templates[tag]
	if !ok {
		return "", fmt.Errorf("prompt template %q not found", tag)
	}
	var out strings.Builder
	if err := p.env.Execute(tpl, &out, vars); err != nil {
		return "", fmt.Errorf("execute prompt %q: %w", tag, err)
	}
	return out.String(), nil
}
