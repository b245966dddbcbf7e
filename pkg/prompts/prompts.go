package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

type Prompts struct {
	Recommend RecommendPrompts `yaml:"recommend"`
	Emotion   string           `yaml:"emotion"`
	Scene     string           `yaml:"scene"`
	Chat      string           `yaml:"chat"`
}

type RecommendPrompts struct {
	Request string `yaml:"request"`
	Enrich  string `yaml:"enrich"`
}

type RecommendParams struct {
	Request string
}

type EnrichParams struct {
	Movies  string
	Request string
}

type EmotionParams struct {
	Emotion string
}

type SceneParams struct {
	Description string
}

type ChatParams struct {
	Message string
	Context string
}

// Default returns the prompts compiled into the binary.
func Default() *Prompts {
	var p Prompts
	if err := yaml.Unmarshal(defaultPrompts, &p); err != nil {
		panic(fmt.Sprintf("embedded prompts are invalid: %v", err))
	}
	return &p
}

// Load returns the embedded defaults when path is empty, otherwise the file at path.
func Load(path string) (*Prompts, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a prompts file. Sections absent from the file keep their defaults.
func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderRecommend(params RecommendParams) (string, error) {
	return render(p.Recommend.Request, params)
}

func (p *Prompts) RenderEnrich(params EnrichParams) (string, error) {
	return render(p.Recommend.Enrich, params)
}

func (p *Prompts) RenderEmotion(params EmotionParams) (string, error) {
	return render(p.Emotion, params)
}

func (p *Prompts) RenderScene(params SceneParams) (string, error) {
	return render(p.Scene, params)
}

func (p *Prompts) RenderChat(params ChatParams) (string, error) {
	return render(p.Chat, params)
}

var funcs = template.FuncMap{"sentence": sentence}

// sentence ends s with a period unless it already ends in terminal punctuation.
func sentence(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" || strings.ContainsAny(s[len(s)-1:], ".!?") {
		return s
	}
	return s + "."
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
