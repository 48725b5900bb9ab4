package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
)

// Chatter is satisfied by Farm and by test doubles.
type Chatter interface {
	Chat(ctx context.Context, req api.ChatRequest, fn api.ChatResponseFunc) error
}

// Farm spreads requests over every registered ollama server
type Farm struct {
	ollamafarm *ollamafarm.Farm
}

func NewFarm(urls []string, logger *Logger.Logger) *Farm {
	farm := ollamafarm.New()

	for _, u := range urls {
		if err := farm.RegisterURL(u, nil); err != nil {
			logger.Warnf("ollama server %s not registered: %v", u, err)
		}
	}

	return &Farm{ollamafarm: farm}
}

func (f *Farm) Chat(ctx context.Context, req api.ChatRequest, fn api.ChatResponseFunc) error {
	// pick first available client
	server := f.ollamafarm.First(&ollamafarm.Where{Offline: false})
	if server == nil {
		return fmt.Errorf("no ollama server online for model %v", req.Model)
	}
	return server.Client().Chat(ctx, &req, fn)
}

type Translator struct {
	chat   Chatter
	model  string
	logger *Logger.Logger
}

var _ translate.Translator = (*Translator)(nil)

func New(chat Chatter, model string, logger *Logger.Logger) *Translator {
	return &Translator{chat: chat, model: model, logger: logger}
}

func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	req := api.ChatRequest{
		Model: t.model,
		Messages: []api.Message{
			{Role: "system", Content: translate.Instruction(source, target)},
			{Role: "user", Content: text},
		},
	}

	var out strings.Builder
	err := t.chat.Chat(ctx, req, func(cr api.ChatResponse) error {
		out.WriteString(cr.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", translate.ErrUnavailable, err)
	}

	t.logger.Debugf("ollama translation (%s): %s", t.model, out.String())
	return translate.Clean(out.String())
}
