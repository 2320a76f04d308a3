// Package questiongen authors topic files with a language model.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/llm"
	"github.com/abhisek/knowtest/internal/logger"
)

// Input describes one generation call: a batch of questions for a
// single level of a topic.
type Input struct {
	Topic string
	Level catalog.Level
	Count int

	// Prior holds question texts already written for the topic.
	Prior []string
}

// Item is a generated multiple-choice question.
type Item struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
}

// Generator writes questions with a model provider and runs the
// configured validators on every item.
type Generator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, config: cfg, log: log}
}

type batchOutput struct {
	Questions []Item `json:"questions"`
}

// GenerateLevel asks for in.Count questions at in.Level. Items failing
// a validator are dropped. An error is returned only when the provider
// fails or nothing usable came back.
func (g *Generator) GenerateLevel(ctx context.Context, in Input) ([]Item, error) {
	ctx = llm.WithPurpose(ctx, fmt.Sprintf("questions:%s:%d", catalog.NormalizeName(in.Topic), in.Level))

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in, g.config)}},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s level %d: %w", in.Topic, in.Level, err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	seen := newDedup(in.Prior)
	items := make([]Item, 0, len(out.Questions))
	for _, item := range out.Questions {
		if verr := g.validate(item, in, seen); verr != nil {
			g.log.Debug("dropped generated question", "topic", in.Topic, "level", int(in.Level), "reason", verr.Error())
			continue
		}
		seen.add(item.Question)
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("generate %s level %d: no valid questions in response", in.Topic, in.Level)
	}
	return items, nil
}

func (g *Generator) validate(item Item, in Input, seen *dedup) *ValidationError {
	if seen.has(item.Question) {
		return &ValidationError{Validator: "dedup", Message: "question repeats an earlier one"}
	}
	for _, v := range g.config.Validators {
		if err := v.Validate(item, in); err != nil {
			return err
		}
	}
	return nil
}

// BuildTopic generates perLevel questions for every level and assembles
// them into a topic record. Question ids are sequential from 1. The
// record is checked with the same rules the catalog applies on load.
func (g *Generator) BuildTopic(ctx context.Context, title string, perLevel int) (catalog.RawTopic, error) {
	if perLevel < 1 {
		return catalog.RawTopic{}, fmt.Errorf("questions per level must be positive, got %d", perLevel)
	}

	topic := catalog.RawTopic{Topic: title}
	var prior []string
	next := 1

	for _, level := range catalog.AllLevels() {
		items, err := g.GenerateLevel(ctx, Input{
			Topic: title,
			Level: level,
			Count: perLevel,
			Prior: prior,
		})
		if err != nil {
			return catalog.RawTopic{}, err
		}
		if len(items) > perLevel {
			items = items[:perLevel]
		}

		for _, item := range items {
			id := catalog.ID(strconv.Itoa(next))
			next++
			topic.Questions = append(topic.Questions, catalog.RawQuestion{
				ID:         id,
				Question:   item.Question,
				Difficulty: int(level),
			})
			topic.Choices = append(topic.Choices, catalog.RawChoiceSet{
				QuestionID: id,
				Choices:    item.Choices,
				Answer:     item.Answer,
			})
			prior = append(prior, item.Question)
		}
		g.log.Info("generated level", "topic", title, "level", level.String(), "questions", len(items))
	}

	if _, err := catalog.New([]catalog.RawTopic{topic}, catalog.Filter{}); err != nil {
		return catalog.RawTopic{}, fmt.Errorf("generated topic is invalid: %w", err)
	}
	return topic, nil
}
