// Package scenario holds the command scripts the terminal can play.
package scenario

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"typedterm/internal/typing"
)

// Scenario is a named script of commands.
type Scenario struct {
	Name        string           `yaml:"name" json:"name" jsonschema:"required"`
	Title       string           `yaml:"title,omitempty" json:"title,omitempty"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Commands    []typing.Command `yaml:"commands" json:"commands" jsonschema:"required"`
}

// Label is the display title, falling back to the name.
func (s Scenario) Label() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Default is played when no scenario is named.
const Default = "install"

var builtins = []Scenario{
	{
		Name:        "install",
		Title:       "npm install",
		Description: "Install a package and start the dev server",
		Commands: []typing.Command{
			{Text: "npm install --save react", Output: []string{"added 3 packages in 1.2s"}},
			{Text: "npm run dev", Output: []string{"ready - started server on http://localhost:3000"}},
		},
	},
	{
		Name:        "init",
		Description: "Scaffold a new project",
		Commands: []typing.Command{
			{Text: "mkdir my-app && cd my-app"},
			{Text: "git init", Output: []string{"Initialized empty Git repository in ~/my-app/.git/"}},
			{Text: "go mod init example.com/my-app", Output: []string{"go: creating new go.mod: module example.com/my-app"}},
		},
	},
	{
		Name:        "test",
		Description: "Run the test suite",
		Commands: []typing.Command{
			{Text: "go test ./... -count=1", Output: []string{
				"ok  \texample.com/my-app/internal/api\t0.412s",
				"ok  \texample.com/my-app/internal/store\t0.108s",
			}},
			{Text: "go test -run TestMissing ./internal/api", Output: []string{
				"--- FAIL: TestMissing (0.00s)",
				"FAIL\texample.com/my-app/internal/api\t0.009s",
			}, Error: true},
		},
	},
	{
		Name:        "deploy",
		Description: "Build, push and roll out a release",
		Commands: []typing.Command{
			{Text: "export TAG=v1.4.2"},
			{Text: "docker build -t registry.example.com/my-app:$TAG .", Output: []string{"Successfully tagged registry.example.com/my-app:v1.4.2"}},
			{Text: "docker push registry.example.com/my-app:$TAG", Output: []string{"v1.4.2: digest: sha256:4f1c... size: 1573"}},
			{Text: "kubectl set image deploy/my-app app=registry.example.com/my-app:$TAG", Output: []string{"deployment.apps/my-app image updated"}},
		},
	},
	{
		Name:        "docker",
		Description: "Run a container and follow its logs",
		Commands: []typing.Command{
			{Text: "docker run -d -p 8080:80 --name web nginx:1.27", Output: []string{"3b1e2f9c0a7d"}},
			{Text: "docker logs -f web 2>&1 | grep GET"},
		},
	},
	{
		Name:        "git",
		Description: "Commit and push a change",
		Commands: []typing.Command{
			{Text: "git checkout -b feature/typing"},
			{Text: "git commit -am \"Add typing effect\"", Output: []string{"[feature/typing 9c2d1e4] Add typing effect", " 3 files changed, 120 insertions(+)"}},
			{Text: "git push -u origin feature/typing"},
		},
	},
}

// Builtins returns copies of the bundled scenarios.
func Builtins() []Scenario {
	out := make([]Scenario, len(builtins))
	for i, s := range builtins {
		out[i] = s.clone()
	}
	return out
}

func (s Scenario) clone() Scenario {
	c := s
	c.Commands = make([]typing.Command, len(s.Commands))
	for i, cmd := range s.Commands {
		cmd.Output = append([]string(nil), cmd.Output...)
		c.Commands[i] = cmd
	}
	return c
}

// Merge combines the built-ins with user scenarios. A user scenario with a
// built-in's name replaces it. The result is sorted by name.
func Merge(user []Scenario) []Scenario {
	byName := map[string]Scenario{}
	for _, s := range Builtins() {
		byName[s.Name] = s
	}
	for _, s := range user {
		name := strings.TrimSpace(s.Name)
		if name == "" || len(s.Commands) == 0 {
			continue
		}
		s.Name = name
		byName[name] = s.clone()
	}
	out := make([]Scenario, 0, len(byName))
	for _, s := range byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type names []Scenario

func (n names) String(i int) string { return n[i].Name }
func (n names) Len() int            { return len(n) }

// Find returns the scenario whose name best matches query. An exact
// (case-insensitive) name wins; otherwise the best fuzzy match.
func Find(list []Scenario, query string) (Scenario, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Scenario{}, false
	}
	for _, s := range list {
		if strings.EqualFold(s.Name, q) {
			return s, true
		}
	}
	matches := fuzzy.FindFrom(q, names(list))
	if len(matches) == 0 {
		return Scenario{}, false
	}
	return list[matches[0].Index], true
}

// Adhoc builds a scenario from literal command lines.
func Adhoc(lines ...string) Scenario {
	return Scenario{Name: "adhoc", Commands: typing.Commands(lines...)}
}
